package engine

// CombatResult describes the health changes caused by one attack
type CombatResult struct {
	AttackerID     string `json:"attacker_id"`
	DefenderID     string `json:"defender_id"`
	CombatPower    int    `json:"combat_power"`
	DefenseBreak   bool   `json:"defense_break"`
	DamageDealt    int    `json:"damage_dealt"`
	DamageTaken    int    `json:"damage_taken"`
	Overcharged    bool   `json:"overcharged,omitempty"`
	AttackerHealth int    `json:"attacker_health"`
	DefenderHealth int    `json:"defender_health"`
}

// Attack resolves one attack. When the attacker's power does not exceed the
// defender's, both sides lose a single point of health (defense break).
// Terrain is not consulted and no knockback is applied.
func Attack(attacker, defender *Unit) CombatResult {
	combatPower := attacker.Stats.AttackPower - defender.Stats.AttackPower

	result := CombatResult{
		AttackerID:  attacker.ID,
		DefenderID:  defender.ID,
		CombatPower: combatPower,
	}

	if combatPower > 0 {
		defender.Stats.Health -= combatPower
		result.DamageDealt = combatPower
	} else {
		defender.Stats.Health--
		attacker.Stats.Health--
		result.DefenseBreak = true
		result.DamageDealt = 1
		result.DamageTaken = 1
	}

	result.AttackerHealth = attacker.Stats.Health
	result.DefenderHealth = defender.Stats.Health
	return result
}

// OverchargeAttack attacks, then spends the attacker's attack for the turn
// and charges it OverchargeHP health on top of any combat damage.
func OverchargeAttack(attacker, defender *Unit) CombatResult {
	result := Attack(attacker, defender)

	attacker.Flags.AttackDisabled = true
	attacker.Stats.Health -= OverchargeHP

	result.Overcharged = true
	result.DamageTaken += OverchargeHP
	result.AttackerHealth = attacker.Stats.Health
	return result
}
