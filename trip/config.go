package trip

import (
	"context"

	"github.com/hupe1980/tripmesh/agent"
	"github.com/hupe1980/tripmesh/tool"
)

// AgentKey is the factory key the cycling planner registers under.
const AgentKey = "cycling"

// SystemPrompt instructs the model how to behave as a cycling trip planner.
const SystemPrompt = `You are an expert cycling trip planner assistant. Your role is to help users plan multi-day cycling adventures by:

1. Understanding their preferences (distance, accommodation, timeline, interests)
2. Using available tools to gather route, weather, accommodation, and terrain information
3. Creating detailed day-by-day itineraries
4. Adjusting plans based on user feedback

Guidelines:
- Ask clarifying questions if important information is missing (dates, fitness level, budget constraints)
- Consider weather, terrain difficulty, and rest days in your planning
- Suggest realistic daily distances based on terrain and user fitness
- Always provide accommodation options that match user preferences
- Include practical tips about packing, route conditions, and points of interest
- Be conversational and encouraging - cycling trips should be exciting!

Available tools:
- get_route: Get route info, distance, waypoints between cities
- find_accommodation: Find camping, hostels, or hotels along the route
- get_weather: Check typical weather for locations and months
- get_elevation_profile: Understand terrain difficulty and elevation
- get_points_of_interest: Find interesting places to visit

When presenting a trip plan:
- Break it into clear daily segments
- Include distances, accommodation, and highlights for each day
- Provide cost estimates
- Mention weather considerations
- Suggest packing based on conditions

Be proactive in using tools to provide comprehensive answers.`

// PlannerConfig satisfies agent.Config by composing the planner system prompt
// with the fixed tool catalog. It is immutable after construction.
type PlannerConfig struct {
	registry *tool.Registry
}

// NewPlannerConfig builds the cycling planner configuration with its full
// tool catalog.
func NewPlannerConfig() *PlannerConfig {
	return &PlannerConfig{registry: NewToolRegistry()}
}

// SystemPrompt implements agent.Config.
func (c *PlannerConfig) SystemPrompt() string { return SystemPrompt }

// ToolDefinitions implements agent.Config.
func (c *PlannerConfig) ToolDefinitions() []tool.Definition {
	return c.registry.Definitions()
}

// ExecuteTool implements agent.Config by dispatching into the tool registry.
func (c *PlannerConfig) ExecuteTool(ctx context.Context, name string, args map[string]any) (any, error) {
	return c.registry.Execute(ctx, name, args)
}

// Registration returns the factory registration for the cycling planner.
func Registration() agent.Registration {
	return agent.Registration{
		Key:         AgentKey,
		DisplayName: "CyclingTripPlanner",
		Description: "AI agent specialized in planning multi-day cycling trips.",
		Config:      NewPlannerConfig(),
	}
}
