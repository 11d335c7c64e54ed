package models

// CheckRequest is the JSON body accepted by the check API.
type CheckRequest struct {
	Text string `json:"text"`
}

// CheckResponse contains the result of a headline check.
type CheckResponse struct {
	Output     string  `json:"output"`
	Decision   string  `json:"decision"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Lookup     string  `json:"lookup"`
}
