package response

type JobResponseDTO struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	JobType     string   `json:"jobType"`
	Description string   `json:"description"`
	Details     *string  `json:"details"`
	Skills      []string `json:"skills"`
	Salary      *string  `json:"salary"`
	IsActive    bool     `json:"isActive"`
}

// JobRefDTO is the slim job reference embedded in board cards.
type JobRefDTO struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}
