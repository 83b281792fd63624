package models

// Agent is a fixed advisor persona used to bias chat replies. The roster is
// static configuration; agents are never created or destroyed at runtime.
type Agent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Persona string `json:"persona"`
	Color   string `json:"color"`
}

// DefaultAgentID is the consensus persona selected when no explicit choice
// has been made.
const DefaultAgentID = "ALL"

// Agents is the full advisor council, in display order.
var Agents = []Agent{
	{ID: "ALL", Name: "The Council", Role: "Consensus Analysis", Persona: "synthesizing multiple perspectives", Color: "#ffffff"},
	{ID: "alpha", Name: "Alpha", Role: "Futurist", Persona: "obsessed with emerging technology and paradigm shifts", Color: "#3b82f6"},
	{ID: "beta", Name: "Beta", Role: "Skeptic", Persona: "critical, finding flaws and risks", Color: "#ef4444"},
	{ID: "gamma", Name: "Gamma", Role: "Humanist", Persona: "focused on social impact and user experience", Color: "#10b981"},
	{ID: "delta", Name: "Delta", Role: "Capitalist", Persona: "ruthlessly focused on revenue and scale", Color: "#f59e0b"},
	{ID: "epsilon", Name: "Epsilon", Role: "Engineer", Persona: "technical feasibility and architecture", Color: "#8b5cf6"},
}

// AgentByID looks up an agent, falling back to The Council for unknown ids.
func AgentByID(id string) Agent {
	for _, a := range Agents {
		if a.ID == id {
			return a
		}
	}
	return Agents[0]
}
