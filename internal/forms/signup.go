package forms

import (
	"context"
	"fmt"

	"github.com/mustakbalak/portal/internal/upstream"
	"github.com/mustakbalak/portal/internal/wizard"
)

func signupDefaults() wizard.Fields {
	return wizard.Fields{
		"userType":    "job_seeker",
		"countryCode": "+971",
	}
}

// signupConfig is the five-step job-seeker registration form. The
// account is created logged out and the user is routed to the login
// page.
func (m *Manager) signupConfig() wizard.Config {
	return wizard.Config{
		Name: FormSignup,
		Steps: []wizard.StepDef{
			{
				Name:           "Account Type",
				RequiredFields: []string{"userType"},
			},
			{
				Name:           "Personal Information",
				RequiredFields: []string{"username", "fullName"},
				Rules:          map[string]string{"username": "min=3"},
			},
			{
				Name:           "Contact Information",
				RequiredFields: []string{"email", "phoneNumber", "countryCode"},
				Rules:          map[string]string{"email": "email"},
			},
			{
				Name:           "Address",
				RequiredFields: []string{"addressType", "streetNumber", "streetName", "district", "city", "postalCode"},
			},
			{
				Name:           "Security",
				RequiredFields: []string{"password", "confirmPassword"},
				Validate:       validatePassword,
			},
		},
		CrossValidate: validatePassword,
		Submit: func(ctx context.Context, payload wizard.Fields) (string, error) {
			req := upstream.SignupRequest{
				Username:        str(payload, "username"),
				FullName:        str(payload, "fullName"),
				Email:           str(payload, "email"),
				PhoneNumber:     str(payload, "countryCode") + digitsOnly(str(payload, "phoneNumber")),
				Address:         assembleAddress(payload),
				UserType:        str(payload, "userType"),
				CurrentPosition: str(payload, "currentPosition"),
				Company:         str(payload, "company"),
				Password:        str(payload, "password"),
			}
			if _, err := m.deps.Upstream.Signup(ctx, req); err != nil {
				return "", err
			}
			return "/login", nil
		},
	}
}

// assembleAddress flattens the typed address parts into the single
// string the backend stores.
func assembleAddress(fields wizard.Fields) string {
	return fmt.Sprintf("%s %s %s, %s, %s, %s",
		str(fields, "addressType"),
		str(fields, "streetNumber"),
		str(fields, "streetName"),
		str(fields, "district"),
		str(fields, "city"),
		str(fields, "postalCode"))
}

func hiringManagerSignupDefaults() wizard.Fields {
	return wizard.Fields{
		"countryCode": "+971",
		"role":        "hiring_manager",
	}
}

// hiringManagerSignupConfig is the five-step hiring-manager
// registration form. A successful signup responds with a token, so the
// session is adopted immediately and the redirect lands on the
// dashboard.
func (m *Manager) hiringManagerSignupConfig(sid string) wizard.Config {
	return wizard.Config{
		Name: FormHiringManagerSignup,
		Steps: []wizard.StepDef{
			{
				Name:           "Personal Information",
				RequiredFields: []string{"username", "fullName"},
				Rules:          map[string]string{"username": "min=3"},
			},
			{
				Name:           "Company Information",
				RequiredFields: []string{"company", "currentPosition", "department", "role", "companySize", "industry"},
			},
			{
				Name:           "Contact Information",
				RequiredFields: []string{"email", "phoneNumber", "countryCode"},
				Rules:          map[string]string{"email": "email"},
			},
			{
				Name:           "Address",
				RequiredFields: []string{"street", "city", "state", "country", "postalCode"},
			},
			{
				Name:           "Security",
				RequiredFields: []string{"password", "confirmPassword"},
				Validate:       validatePassword,
			},
		},
		CrossValidate: validatePassword,
		Submit: func(ctx context.Context, payload wizard.Fields) (string, error) {
			req := upstream.HiringManagerSignupRequest{
				Username:        str(payload, "username"),
				FullName:        str(payload, "fullName"),
				Email:           str(payload, "email"),
				PhoneNumber:     str(payload, "countryCode") + digitsOnly(str(payload, "phoneNumber")),
				Password:        str(payload, "password"),
				CurrentPosition: str(payload, "currentPosition"),
				Company:         str(payload, "company"),
				Department:      str(payload, "department"),
				Role:            str(payload, "role"),
				CompanySize:     str(payload, "companySize"),
				Industry:        str(payload, "industry"),
				Address: upstream.SignupAddress{
					Street:     str(payload, "street"),
					City:       str(payload, "city"),
					State:      str(payload, "state"),
					Country:    str(payload, "country"),
					PostalCode: str(payload, "postalCode"),
				},
			}
			result, err := m.deps.Upstream.HiringManagerSignup(ctx, req)
			if err != nil {
				return "", err
			}
			if err := m.deps.Sessions.Login(ctx, sid, result.Token, result.User); err != nil {
				return "", err
			}
			return "/hiring-manager/dashboard", nil
		},
	}
}
