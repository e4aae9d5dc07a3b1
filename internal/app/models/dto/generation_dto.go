package dto

// GenerateImageRequest is the body of POST /generate/image. Either a prompt
// or a preset id is required; explicit fields override the preset.
type GenerateImageRequest struct {
	Prompt         string  `json:"prompt" binding:"required_without=PresetID,max=4000" example:"Keynote stage with blue lighting"`
	PresetID       string  `json:"preset_id" example:"quick-demo"`
	NegativePrompt string  `json:"negative_prompt" binding:"max=2000"`
	Width          int     `json:"width" binding:"omitempty,min=64,max=2048" example:"1024"`
	Height         int     `json:"height" binding:"omitempty,min=64,max=2048" example:"768"`
	Steps          int     `json:"steps" binding:"omitempty,min=1,max=100" example:"15"`
	CFGScale       float64 `json:"cfg_scale" binding:"omitempty,gt=0,max=30" example:"7.5"`
	Seed           *int64  `json:"seed"`
	Model          string  `json:"model" binding:"omitempty,oneof=realistic anime framepack ltxv wan hunyuan" example:"realistic"`
}

// GenerateVideoRequest is the body of POST /generate/video
type GenerateVideoRequest struct {
	Prompt         string `json:"prompt" binding:"required,max=4000" example:"Crowd cheering at a product launch"`
	NegativePrompt string `json:"negative_prompt" binding:"max=2000"`
	ImageURL       string `json:"image_url" binding:"omitempty,url"`
	Model          string `json:"model" binding:"omitempty,oneof=framepack ltxv wan hunyuan" example:"framepack"`
	Duration       int    `json:"duration" binding:"omitempty,min=1,max=30" example:"5"`
}
