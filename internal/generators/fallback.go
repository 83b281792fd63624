package generators

import "github.com/apexlabs/apex-protocol/internal/models"

// FallbackIdeas returns the canned idea set served when live generation is
// unavailable. Every record is fully populated so no normalization is
// needed; ids run 1..5 in display order.
func FallbackIdeas() []models.Idea {
	return []models.Idea{
		{
			ID:        1,
			Name:      "AdminAI",
			Tagline:   "Life Admin Automation",
			Valuation: "$1.2B",
			Agony:     "People spend 20+ hours per month managing bills, subscriptions, and financial admin. Most pay for services they don't use and overpay on utilities due to lack of time to negotiate.",
			Solution:  "AI agent with limited power of attorney that monitors all recurring charges, automatically negotiates better rates with providers, cancels unused subscriptions, and handles bill disputes. Uses banking API integrations and natural language processing to act on user's behalf.",
			Revenue:   "Take 20% of all savings generated. No savings, no charge. Average user saves $200/month, we make $40/month per active user.",
			Moat:      "Banking API integrations take 18+ months to establish. Network effects from provider relationships. Regulatory compliance creates high barriers to entry.",
			WhyNow:    "Open banking APIs now mature. Consumer trust in AI agents growing. Economic pressure making people cost-conscious.",
			Blueprint: []string{
				"Phase 1: Build OCR receipt scanner and bank integration MVP with 3 major banks",
				"Phase 2: Launch manual concierge pilot with 100 users to validate value prop and unit economics",
				"Phase 3: Train AI negotiation models on successful human interactions, automate 80% of cases",
				"Phase 4: Partner with enterprise benefits platforms to offer as employee perk at scale",
			},
		},
		{
			ID:        2,
			Name:      "LegacyVault",
			Tagline:   "Digital Estate Planning",
			Valuation: "$850M",
			Agony:     "Billions in crypto and digital assets are lost each year when owners die unexpectedly. Families can't access critical accounts, passwords, or investments. Traditional estate planning doesn't cover digital assets.",
			Solution:  "Secure dead man's switch system that monitors user activity and automatically releases encrypted credentials, crypto keys, and digital instructions to designated beneficiaries after verified death. Multi-signature verification prevents false triggers.",
			Revenue:   "Freemium model: Free for basic password vault, $15/month for full estate features, $500 one-time setup for high-net-worth clients with legal integration.",
			Moat:      "Security infrastructure and insurance partnerships create trust. Legal framework for digital asset transfer. First-mover advantage in regulated space.",
			WhyNow:    "First generation of crypto millionaires aging. Recent high-profile cases of lost fortunes. Regulatory clarity emerging on digital asset inheritance.",
			Blueprint: []string{
				"Phase 1: Build encrypted vault with dead man's switch, launch to crypto communities",
				"Phase 2: Partner with death certificate verification APIs and identity services",
				"Phase 3: Close deals with 3 major life insurance companies for bundled offering",
				"Phase 4: Become default standard for digital estate planning through legal partnerships",
			},
		},
		{
			ID:        3,
			Name:      "DeepVax",
			Tagline:   "In-Silico Clinical Trials",
			Valuation: "$4B",
			Agony:     "Drug trials take 10+ years and cost $2B per drug. 90% of drugs fail in human trials. Rare diseases can't attract trial participants. Animal models don't predict human response.",
			Solution:  "Digital twin platform that simulates human biology at cellular level to test drug efficacy and safety in silico. Uses patient data, genomics, and protein folding models to predict drug response before human trials.",
			Revenue:   "License to pharma companies at $5M per trial simulation. Take 2% royalty on drugs that use our platform for FDA approval.",
			Moat:      "Proprietary biological models trained on decades of clinical data. FDA relationship for approval pathway. Massive compute infrastructure.",
			WhyNow:    "AlphaFold 3 solved protein structure. FDA released guidance on model-based drug approval. GPU costs falling while compute power rising.",
			Blueprint: []string{
				"Phase 1: Train models on historical trial data, validate retrospectively on 50 known drugs",
				"Phase 2: Run parallel in-silico trials alongside Phase 1 trials to prove predictive power",
				"Phase 3: Secure FDA pilot program for accelerated approval pathway using simulation data",
				"Phase 4: Scale to 20 pharma partners and become required step before human trials",
			},
		},
		{
			ID:        4,
			Name:      "Fabric",
			Tagline:   "Local Manufacturing Network",
			Valuation: "$300M",
			Agony:     "Supply chain disruptions cause 6-month delays for simple products. Shipping costs and carbon emissions are unsustainable. Small manufacturers sit idle while consumers wait for overseas goods.",
			Solution:  "Network of local manufacturers, 3D printers, and craftspeople connected through a platform that routes production to nearest capable maker. Digital patterns and specifications enable distributed manufacturing.",
			Revenue:   "Take 15% marketplace fee on all transactions. Subscription model for manufacturers ($99/month). License pattern library to brands ($10k/year).",
			Moat:      "Network effects from maker density. Curated pattern library with IP protection. Quality control systems and logistics infrastructure.",
			WhyNow:    "Supply chain chaos made local manufacturing economically viable. 3D printing costs dropped 80%. Consumer preference shifting to sustainable, local goods.",
			Blueprint: []string{
				"Phase 1: Recruit 500 makers in one city, build pattern library with 1000 products",
				"Phase 2: Launch consumer app, prove unit economics with apparel and home goods",
				"Phase 3: Expand to 10 cities, sign 5 brands to manufacture their products locally",
				"Phase 4: Become B2B infrastructure - brands use Fabric instead of overseas factories",
			},
		},
		{
			ID:        5,
			Name:      "Orbit",
			Tagline:   "Third Place Infrastructure",
			Valuation: "$550M",
			Agony:     "Loneliness epidemic affecting 60% of adults. Coffee shops and public spaces exist but lack coordination mechanisms. People want community but don't know where to find their tribe.",
			Solution:  "Platform that enables cafes, libraries, and coworking spaces to host interest-based group gatherings. Algorithm matches people with similar interests and suggests optimal times/places. Venues get guaranteed foot traffic.",
			Revenue:   "Booking fee of $3 per attendee. Premium membership $12/month for unlimited events. Venue partnership fees $200/month for promoted listings.",
			Moat:      "Two-sided network effects. Proprietary matching algorithm. Relationships with commercial real estate and venue chains.",
			WhyNow:    "Post-pandemic social infrastructure collapsed. Remote work created flexible schedules. Mental health crisis driving demand for IRL connection.",
			Blueprint: []string{
				"Phase 1: Launch in one neighborhood with 20 venues, manually curate first 100 events",
				"Phase 2: Build self-service tools for event hosts, grow to 1000 weekly active users",
				"Phase 3: Expand to 5 cities, partner with national cafe chains for guaranteed venues",
				"Phase 4: Launch corporate team building product and membership program for recurring revenue",
			},
		},
	}
}

// FallbackScenarios returns the canned threat set served when live war-room
// analysis is unavailable.
func FallbackScenarios() []models.ThreatScenario {
	return []models.ThreatScenario{
		{
			Type:     "COMPETITOR",
			Title:    "Big Tech Acqui-Hire",
			Desc:     "A major tech company launches a similar feature and simultaneously tries to acqui-hire your founding team. They can give it away free and have infinite distribution. Customers start asking why they should pay you.",
			Protocol: "Double down on vertical specialization. Serve a specific industry so deeply that the generic solution can't compete. Build proprietary data moats and long-term contracts with key accounts.",
		},
		{
			Type:     "BLACK SWAN",
			Title:    "Regulatory Hammer",
			Desc:     "A new regulation suddenly makes your core business model illegal or uneconomical in your primary market. Compliance costs would consume all revenue. Competitors pivot faster.",
			Protocol: "Build geo-arbitrage from day one - operate in multiple jurisdictions. Maintain a 'regulatory pivot' plan with alternative business models ready. Join industry associations early to shape regulation.",
		},
		{
			Type:     "INTERNAL",
			Title:    "Technical Debt Collapse",
			Desc:     "Your MVP architecture can't scale. The codebase becomes unmaintainable. Customer growth stalls because you're spending 80% of eng time on firefighting. Key engineers quit in frustration.",
			Protocol: "Allocate 20% of every sprint to infrastructure from day one. Build with boring, proven tech. Hire senior engineers who have scaled systems before. Consider strategic 'rebuild while running' phases.",
		},
	}
}

// FallbackDeck returns the canned pitch deck, interpolating the live idea's
// solution, revenue and moat so the template still reads as specific to it.
func FallbackDeck(idea models.Idea) []models.Slide {
	solution := idea.Solution
	if solution == "" {
		solution = "AI-first approach to solve the core issue"
	}
	revenue := idea.Revenue
	if revenue == "" {
		revenue = "SaaS subscription with usage-based pricing"
	}
	moat := idea.Moat
	if moat == "" {
		moat = "Proprietary technology and data advantages"
	}

	return []models.Slide{
		{Title: "The Problem", Bullets: []string{"Market pain point is severe", "Current solutions inadequate", "Timing is perfect"}},
		{Title: "The Solution", Bullets: []string{solution, "10x better than alternatives", "Scalable technology"}},
		{Title: "Market Size", Bullets: []string{"TAM: $10B", "SAM: $2B", "SOM: $500M"}},
		{Title: "Business Model", Bullets: []string{revenue, "High margins", "Recurring revenue"}},
		{Title: "Traction", Bullets: []string{"Early validation", "Growing demand", "Pilot customers"}},
		{Title: "Competition", Bullets: []string{moat, "Unique advantages", "Defensible position"}},
		{Title: "Team", Bullets: []string{"Expert founders", "Domain expertise", "Proven track record"}},
		{Title: "The Ask", Bullets: []string{"Raising $2M", "18-month runway", "Scale to $1M ARR"}},
	}
}
