package texel

// Preset is a ready-made prompt with tuned generation settings
type Preset struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	PromptTemplate string  `json:"prompt_template"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Model          string  `json:"model"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	CFGScale       float64 `json:"cfg_scale"`
	Category       string  `json:"category"`
}

var presets = []Preset{
	{
		ID:             "corporate-handshake",
		Name:           "Corporate AI Handshake",
		Description:    "Professional business executive meeting advanced AI",
		PromptTemplate: "Professional business executive in tailored navy suit extends hand toward advanced humanoid robot with sleek metallic design and glowing blue accents. Modern corporate boardroom with holographic displays.",
		NegativePrompt: "poor hand anatomy, unrealistic robot design, clunky movements, harsh lighting",
		Model:          "framepack",
		Width:          1024,
		Height:         768,
		Steps:          20,
		CFGScale:       8.0,
		Category:       "human-robot",
	},
	{
		ID:             "tech-partnership",
		Name:           "Next-Gen Tech Partnership",
		Description:    "High-detail human-AI collaboration scene",
		PromptTemplate: "Distinguished technology executive in elegant business attire engages in groundbreaking handshake with state-of-the-art android featuring premium metallic finish. High-end technology laboratory setting.",
		NegativePrompt: "poor material quality, unconvincing robot design, low detail rendering",
		Model:          "wan",
		Width:          1024,
		Height:         768,
		Steps:          25,
		CFGScale:       8.5,
		Category:       "corporate",
	},
	{
		ID:             "quick-demo",
		Name:           "Quick Tech Demo",
		Description:    "Fast generation for concept development",
		PromptTemplate: "Business professional shakes hands with sleek robot in modern tech showcase. Clean handshake interaction in simple tech environment.",
		NegativePrompt: "complex background, multiple characters, overdetailed scene",
		Model:          "ltxv",
		Width:          512,
		Height:         512,
		Steps:          10,
		CFGScale:       7.0,
		Category:       "tech",
	},
}

// Presets returns a copy of the built-in presets
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// FindPreset looks up a preset by id
func FindPreset(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// ImageRequest builds a generation request from the preset
func (p Preset) ImageRequest() ImageRequest {
	return ImageRequest{
		Prompt:         p.PromptTemplate,
		NegativePrompt: p.NegativePrompt,
		Width:          p.Width,
		Height:         p.Height,
		Steps:          p.Steps,
		CFGScale:       p.CFGScale,
		Model:          p.Model,
	}
}
