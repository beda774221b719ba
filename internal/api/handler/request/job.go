package request

type CreateJobDTO struct {
	Title       string   `json:"title" validate:"required"`
	JobType     string   `json:"jobType" validate:"omitempty,oneof=engineering other internship"`
	Description string   `json:"description" validate:"required"`
	Details     *string  `json:"details"`
	Skills      []string `json:"skills" validate:"required,min=1"`
	Salary      *string  `json:"salary"`
	IsActive    *bool    `json:"isActive"`
}

type UpdateJobDTO struct {
	Title       string   `json:"title" validate:"required"`
	JobType     string   `json:"jobType" validate:"omitempty,oneof=engineering other internship"`
	Description string   `json:"description" validate:"required"`
	Details     *string  `json:"details"`
	Skills      []string `json:"skills" validate:"required,min=1"`
	Salary      *string  `json:"salary"`
	IsActive    bool     `json:"isActive"`
}
