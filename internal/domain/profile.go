package domain

import "time"

// Education is one entry in a job seeker's education history.
type Education struct {
	Degree         string     `json:"degree"`
	Field          string     `json:"field"`
	Institution    string     `json:"institution"`
	GraduationDate *time.Time `json:"graduationDate"`
	Description    string     `json:"description"`
}

// Experience is one entry in a job seeker's work history.
type Experience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// Certificate is one certification entry.
type Certificate struct {
	Name        string     `json:"name"`
	Issuer      string     `json:"issuer"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
}

// JobSeekerProfile is the extended profile for job seekers.
type JobSeekerProfile struct {
	Nationality     string        `json:"nationality"`
	DOB             *time.Time    `json:"DOB"`
	Education       []Education   `json:"education"`
	Experience      []Experience  `json:"experience"`
	Certificates    []Certificate `json:"certificates"`
	Fields          []string      `json:"fields"`
	CurrentPosition string        `json:"currentPosition"`
	Company         string        `json:"company"`
}

// HiringManagerProfile is the extended profile for hiring managers.
type HiringManagerProfile struct {
	Company         string `json:"company"`
	Department      string `json:"department"`
	Role            string `json:"role"`
	CompanySize     string `json:"companySize"`
	Industry        string `json:"industry"`
	CurrentPosition string `json:"currentPosition"`
}
