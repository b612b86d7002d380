package player

// Agent pairs an evolvable policy with its accumulated fitness. Fitness is
// an integer sum of game outcomes across one generation's pairings.
type Agent struct {
	Player  *NNPlayer `json:"player"`
	Fitness int       `json:"fitness"`
}

// NewAgent wraps a player with zero fitness.
func NewAgent(p *NNPlayer) Agent {
	return Agent{Player: p}
}

// Clone deep-copies the agent, keeping its fitness.
func (a Agent) Clone() Agent {
	return Agent{Player: a.Player.Clone(), Fitness: a.Fitness}
}
