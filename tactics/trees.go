package tactics

import (
	"github.com/nstehr/hexfront/bt"
	"github.com/nstehr/hexfront/model"
)

func infantryTree(ai *UnitAI) bt.Node {
	s := ai.env.Settings
	return bt.Selector(
		ai.when(ai.canInvadeEnemyBase, "invade-base", ai.invadeEnemyBase),
		ai.when(ai.enemyInAttackRange, "attack-in-range", ai.attackInRange),
		ai.when(ai.canSeekCover, "seek-cover", ai.seekCover),
		ai.when(func() bool { return ai.inDanger() && ai.unit.HealthFraction() < s.InfantryRetreatHealth },
			"retreat", ai.retreat),
		bt.Selector(
			ai.when(ai.ordered(model.OrderAttack), "attack", func() bt.Status { return ai.attack(0, false) }),
			ai.when(ai.ordered(model.OrderDefend), "defend", func() bt.Status { return ai.defend(0) }),
			ai.when(ai.ordered(model.OrderGather), "gather", ai.gather),
			ai.when(ai.ordered(model.OrderRetreat), "retreat", ai.retreat),
		),
		ai.step("idle", ai.idle),
	)
}

func cavalryTree(ai *UnitAI) bt.Node {
	s := ai.env.Settings
	return bt.Selector(
		ai.when(ai.canInvadeEnemyBase, "invade-base", ai.invadeEnemyBase),
		// A charge that cannot find a path still ends the unit's turn.
		bt.Sequence(bt.Condition(ai.canCharge), bt.Succeed(ai.step("charge", ai.charge))),
		ai.when(func() bool { return ai.inDanger() && ai.unit.HealthFraction() < s.CavalryRetreatHealth },
			"retreat", ai.retreat),
		ai.when(ai.enemyInAttackRange, "attack-in-range", ai.attackInRange),
		bt.Selector(
			ai.when(ai.ordered(model.OrderAttack), "attack", func() bt.Status { return ai.attack(0, false) }),
			ai.when(ai.ordered(model.OrderDefend), "patrol", ai.patrol),
			ai.when(ai.ordered(model.OrderGather), "raid", ai.raid),
			ai.when(ai.ordered(model.OrderRetreat), "retreat", ai.retreat),
		),
		ai.step("idle", ai.idle),
	)
}

func artilleryTree(ai *UnitAI) bt.Node {
	safe := ai.env.Settings.ArtillerySafeDistance
	return bt.Selector(
		ai.when(ai.canInvadeEnemyBase, "invade-base", ai.invadeEnemyBase),
		ai.when(ai.enemyTooClose, "reposition", func() bt.Status { return ai.defend(safe) }),
		ai.when(ai.hasTargetAtSafeRange, "attack-in-range", ai.attackAtSafeRange),
		bt.Selector(
			ai.when(ai.ordered(model.OrderAttack), "attack", func() bt.Status { return ai.attack(safe, true) }),
			ai.when(ai.ordered(model.OrderDefend), "defend", func() bt.Status { return ai.defend(safe) }),
			ai.when(ai.ordered(model.OrderGather), "gather", ai.gather),
			ai.when(ai.ordered(model.OrderRetreat), "retreat", ai.retreat),
		),
		ai.step("idle", ai.idle),
	)
}
