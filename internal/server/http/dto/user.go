package dto

import "github.com/polkiloo/eventhub/internal/domain/model"

// ProfileRequest carries onboarding answers.
type ProfileRequest struct {
	CollegeName         string `json:"collegeName"`
	Course              string `json:"course"`
	Specialization      string `json:"specialization"`
	GraduationStartYear int    `json:"graduationStartYear"`
	GraduationEndYear   int    `json:"graduationEndYear"`
	PhoneNumber         string `json:"phoneNumber"`
	Gender              string `json:"gender,omitempty"`
}

// Model converts the request to a domain profile.
func (r ProfileRequest) Model() model.Profile {
	return model.Profile{
		CollegeName:         r.CollegeName,
		Course:              r.Course,
		Specialization:      r.Specialization,
		GraduationStartYear: r.GraduationStartYear,
		GraduationEndYear:   r.GraduationEndYear,
		PhoneNumber:         r.PhoneNumber,
		Gender:              r.Gender,
	}
}

// UserResponse describes the stored user.
type UserResponse struct {
	ID                  string          `json:"id"`
	Email               string          `json:"email,omitempty"`
	Username            string          `json:"username,omitempty"`
	FirstName           string          `json:"firstName,omitempty"`
	LastName            string          `json:"lastName,omitempty"`
	Photo               string          `json:"photo,omitempty"`
	HasCompletedProfile bool            `json:"hasCompletedProfile"`
	Profile             *ProfileRequest `json:"profile,omitempty"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Photo:               u.Photo,
		HasCompletedProfile: u.HasCompletedProfile,
	}
	if u.HasCompletedProfile {
		resp.Profile = &ProfileRequest{
			CollegeName:         u.CollegeName,
			Course:              u.Course,
			Specialization:      u.Specialization,
			GraduationStartYear: u.GraduationStartYear,
			GraduationEndYear:   u.GraduationEndYear,
			PhoneNumber:         u.PhoneNumber,
			Gender:              u.Gender,
		}
	}
	return resp
}
