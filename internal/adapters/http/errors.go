package web

import (
	"database/sql"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/gymclass"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
	"gymdesk/internal/domain/reminder"
	"gymdesk/internal/domain/trainer"
)

// notFoundErrors become 404s. sql.ErrNoRows covers direct store lookups.
var notFoundErrors = []error{
	sql.ErrNoRows,
	orchestrators.ErrMemberNotFound,
	orchestrators.ErrClassNotFound,
	orchestrators.ErrTrainerNotFound,
	orchestrators.ErrPaymentNotFound,
	orchestrators.ErrAccountNotFound,
}

// validationErrors are user mistakes: shown to the user, nothing written.
var validationErrors = []error{
	member.ErrEmptyName,
	member.ErrNameTooLong,
	member.ErrInvalidPhone,
	member.ErrMissingExpiry,
	member.ErrCustomNeedsExpiry,
	member.ErrInvalidExpiryValue,
	gymclass.ErrEmptyName,
	gymclass.ErrNameTooLong,
	gymclass.ErrMissingDate,
	gymclass.ErrInvalidCapacity,
	trainer.ErrEmptyName,
	trainer.ErrNameTooLong,
	trainer.ErrSpecialtyTooLong,
	trainer.ErrContactTooLong,
	payment.ErrNoMember,
	payment.ErrNegativeAmount,
	payment.ErrAmountNotFinite,
	payment.ErrMissingDate,
	payment.ErrMethodTooLong,
	reminder.ErrNoPhone,
	account.ErrPasswordTooShort,
	account.ErrEmptyPassword,
	orchestrators.ErrInvalidAmount,
	orchestrators.ErrInvalidDate,
	orchestrators.ErrNoMembersForSample,
	orchestrators.ErrPasswordFieldsRequired,
	orchestrators.ErrCurrentPasswordWrong,
	orchestrators.ErrNewPasswordSame,
}

func isNotFound(err error) bool {
	return anyOf(err, notFoundErrors...)
}

func isValidation(err error) bool {
	return anyOf(err, validationErrors...)
}
