package inference

// structuredOutput is the object the model is asked to produce.
type structuredOutput struct {
	Type     string   `json:"type" validate:"required,oneof=task event"`
	Title    string   `json:"title" validate:"required"`
	Datetime *string  `json:"datetime"`
	Tags     []string `json:"tags" validate:"omitempty,dive,required"`
	Priority *string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}
