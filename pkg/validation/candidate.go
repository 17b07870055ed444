package validation

import (
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// ValidateCandidate checks a creation submission and returns the first violation
// as a validation AppError. Rules run in a fixed order so the reported message
// is deterministic: names, email, phone, address, educations, work experiences, cv.
func ValidateCandidate(v *validator.Validate, in *domain.CandidateInput) error {
	if in == nil {
		return apperror.Validation(MsgInvalidBody)
	}

	err := firstFailure(v,
		check{in.FirstName, tagName, MsgInvalidName, in.WrongType("firstName")},
		check{in.LastName, tagName, MsgInvalidName, in.WrongType("lastName")},
		check{in.Email, tagEmail, MsgInvalidEmail, in.WrongType("email")},
		check{in.Phone, tagPhone, MsgInvalidPhone, in.WrongType("phone")},
		check{in.Address, tagAddress, MsgInvalidAddress, in.WrongType("address")},
	)
	if err != nil {
		return err
	}

	if err := validateEducations(v, in.Educations); err != nil {
		return err
	}
	if err := validateWorkExperiences(v, in.WorkExperiences); err != nil {
		return err
	}
	return validateCV(v, in.CV)
}

// ValidateCandidateUpdate applies the creation rules to the fields an update supplies.
func ValidateCandidateUpdate(v *validator.Validate, in *domain.CandidateUpdate) error {
	if in == nil {
		return apperror.Validation(MsgInvalidBody)
	}
	if in.FirstName != nil {
		if err := firstFailure(v, check{*in.FirstName, tagName, MsgInvalidName, in.WrongType("firstName")}); err != nil {
			return err
		}
	}
	if in.LastName != nil {
		if err := firstFailure(v, check{*in.LastName, tagName, MsgInvalidName, in.WrongType("lastName")}); err != nil {
			return err
		}
	}
	if err := validateEducations(v, in.Educations); err != nil {
		return err
	}
	return validateWorkExperiences(v, in.WorkExperiences)
}

func validateEducations(v *validator.Validate, educations []domain.EducationInput) error {
	for i := range educations {
		e := &educations[i]
		err := firstFailure(v,
			check{e.Institution, tagLabel, MsgInvalidInstitution, e.WrongType("institution")},
			check{e.Title, tagLabel, MsgInvalidTitle, e.WrongType("title")},
		)
		if err != nil {
			return err
		}
		if err := validateDateRange(v, e.StartDate, e.EndDate, e.WrongType("startDate") || e.WrongType("endDate")); err != nil {
			return err
		}
	}
	return nil
}

func validateWorkExperiences(v *validator.Validate, experiences []domain.WorkExperienceInput) error {
	for i := range experiences {
		w := &experiences[i]
		err := firstFailure(v,
			check{w.Company, tagLabel, MsgInvalidCompany, w.WrongType("company")},
			check{w.Position, tagLabel, MsgInvalidPosition, w.WrongType("position")},
			check{w.Description, tagDescription, MsgInvalidDescription, w.WrongType("description")},
		)
		if err != nil {
			return err
		}
		if err := validateDateRange(v, w.StartDate, w.EndDate, w.WrongType("startDate") || w.WrongType("endDate")); err != nil {
			return err
		}
	}
	return nil
}

func validateDateRange(v *validator.Validate, start, end string, wrongType bool) error {
	err := firstFailure(v,
		check{start, tagStartDate, MsgInvalidDate, wrongType},
		check{end, tagEndDate, MsgInvalidDate, false},
	)
	if err != nil || end == "" {
		return err
	}

	startDate, _ := domain.ParseDate(start)
	endDate, _ := domain.ParseDate(end)
	if endDate.Before(startDate) {
		return apperror.Validation(MsgInvalidDateOrder)
	}
	return nil
}

func validateCV(v *validator.Validate, cv *domain.CVInput) error {
	if cv == nil {
		return nil
	}
	if !cv.IsObject() {
		return apperror.Validation(MsgInvalidCV)
	}
	return firstFailure(v,
		check{cv.FilePath, tagRequired, MsgInvalidCV, false},
		check{cv.FileType, tagRequired, MsgInvalidCV, false},
	)
}
