package agreements

import (
	"fmt"
	"strings"
)

// Kind identifies an agreement category on the wire.
type Kind string

const (
	KindService    Kind = "service"
	KindRental     Kind = "rental"
	KindEmployment Kind = "employment"
	KindNDA        Kind = "nda"
	KindOther      Kind = "other"
)

// Kinds lists every supported category in display order.
var Kinds = []Kind{KindService, KindRental, KindEmployment, KindNDA, KindOther}

// ParseKind normalizes and validates a category tag.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case KindService, KindRental, KindEmployment, KindNDA, KindOther:
		return k, nil
	case "nondisclosure", "non-disclosure":
		return KindNDA, nil
	default:
		return "", fmt.Errorf("unknown agreement type %q", raw)
	}
}

// Form is one variant of the agreement request union. Each variant carries the
// fixed field set of its category.
type Form interface {
	Kind() Kind
}

// ServiceAgreement covers a provider delivering services to a client.
type ServiceAgreement struct {
	ServiceProviderName    string `json:"service_provider_name" validate:"required"`
	ClientName             string `json:"client_name" validate:"required"`
	ServiceDescription     string `json:"service_description" validate:"required"`
	ServiceFee             string `json:"service_fee" validate:"required"`
	StartDate              string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ServiceProviderAddress string `json:"service_provider_address,omitempty"`
	ClientAddress          string `json:"client_address,omitempty"`
	ServiceCategory        string `json:"service_category,omitempty"`
	PaymentTerms           string `json:"payment_terms,omitempty"`
	GoverningState         string `json:"governing_state,omitempty"`
}

func (ServiceAgreement) Kind() Kind { return KindService }

// RentalAgreement covers a residential lease.
type RentalAgreement struct {
	TenantName      string `json:"tenant_name" validate:"required"`
	LandlordName    string `json:"landlord_name" validate:"required"`
	PropertyAddress string `json:"property_address" validate:"required"`
	RentAmount      string `json:"rent_amount" validate:"required"`
	Duration        string `json:"duration" validate:"required"`
	Terms           string `json:"terms,omitempty"`
	StartDate       string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SecurityDeposit string `json:"security_deposit,omitempty"`
}

func (RentalAgreement) Kind() Kind { return KindRental }

// EmploymentAgreement covers an offer of employment.
type EmploymentAgreement struct {
	EmployerName    string `json:"employer_name" validate:"required"`
	EmployeeName    string `json:"employee_name" validate:"required"`
	JobTitle        string `json:"job_title" validate:"required"`
	Salary          string `json:"salary" validate:"required"`
	JoiningDate     string `json:"joining_date" validate:"required,datetime=2006-01-02"`
	ProbationPeriod string `json:"probation_period,omitempty"`
}

func (EmploymentAgreement) Kind() Kind { return KindEmployment }

// NDAAgreement covers a one-way non-disclosure agreement.
type NDAAgreement struct {
	DisclosingParty  string `json:"disclosing_party" validate:"required"`
	ReceivingParty   string `json:"receiving_party" validate:"required"`
	ConfidentialInfo string `json:"confidential_info" validate:"required"`
	EffectiveDate    string `json:"effective_date" validate:"required,datetime=2006-01-02"`
	NDADuration      string `json:"nda_duration" validate:"required"`
	GoverningState   string `json:"governing_state,omitempty"`
}

func (NDAAgreement) Kind() Kind { return KindNDA }

// OtherAgreement is free-form text describing a custom agreement.
type OtherAgreement struct {
	CustomAgreement string `json:"custom_agreement" validate:"required"`
}

func (OtherAgreement) Kind() Kind { return KindOther }

// New returns an empty form of the given kind.
func New(kind Kind) (Form, error) {
	switch kind {
	case KindService:
		return &ServiceAgreement{}, nil
	case KindRental:
		return &RentalAgreement{}, nil
	case KindEmployment:
		return &EmploymentAgreement{}, nil
	case KindNDA:
		return &NDAAgreement{}, nil
	case KindOther:
		return &OtherAgreement{}, nil
	default:
		return nil, fmt.Errorf("unknown agreement type %q", kind)
	}
}
