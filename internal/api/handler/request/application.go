package request

// SubmitApplicationDTO mirrors the multipart application form. The resume
// file itself travels alongside and is handled by the endpoint.
type SubmitApplicationDTO struct {
	JobID     uint    `form:"jobId" validate:"required"`
	Name      string  `form:"name" validate:"required"`
	Email     string  `form:"email" validate:"required,email"`
	Contact   string  `form:"contact" validate:"required"`
	WhyFit    string  `form:"whyFit" validate:"required"`
	Portfolio *string `form:"portfolio" validate:"omitempty,url"`
	Linkedin  *string `form:"linkedin" validate:"omitempty,url"`
	Github    *string `form:"github" validate:"omitempty,url"`
}
