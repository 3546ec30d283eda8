package mockbackend

import (
	"fmt"
	"strings"
	"text/template"

	"legalease-client/internal/agreements"
)

const notSpecified = "[Not specified]"

// fieldDefaults fills optional fields the requester left blank.
var fieldDefaults = map[string]string{
	"service_provider_address": "[Service Provider Address]",
	"client_address":           "[Client Address]",
	"payment_terms":            "Net 30 days",
	"governing_state":          "[State/Province]",
	"service_category":         "professional services",
	"security_deposit":         "[Security Deposit Amount]",
	"start_date":               "[Start Date]",
	"end_date":                 "[End Date]",
}

const serviceTemplate = `SERVICE AGREEMENT

PARTIES
This Service Agreement (the "Agreement") is made and entered into as of {{.start_date}} (the "Effective Date"), by and between {{.service_provider_name}}, with its principal place of business at {{.service_provider_address}} (the "Service Provider"), and {{.client_name}}, with its principal place of business at {{.client_address}} (the "Client").

WHEREAS, the Service Provider is engaged in the business of providing {{.service_category}}; and the Client desires to retain the Service Provider to perform the services set forth herein.

1. SERVICES
The Service Provider agrees to perform the following services (the "Services") for the Client:

{{.service_description}}

2. COMPENSATION
In consideration for the Services, the Client shall pay the Service Provider the sum of {{.service_fee}}.
Payment Terms: {{.payment_terms}}

3. TERM AND TERMINATION
This Agreement commences on the Effective Date and continues until {{.end_date}}, unless terminated earlier. Either party may terminate this Agreement upon thirty (30) days' written notice.

4. CONFIDENTIALITY
Each party shall keep the other party's confidential information confidential and shall not disclose it without prior written consent.

5. INTELLECTUAL PROPERTY
All deliverables created by the Service Provider under this Agreement are owned by the Client upon full payment of all fees due.

6. GOVERNING LAW
This Agreement is governed by the laws of {{.governing_state}}.

SIGNATURES
SERVICE PROVIDER: {{.service_provider_name}}    ______________________
CLIENT: {{.client_name}}    ______________________
`

const rentalTemplate = `RESIDENTIAL RENTAL AGREEMENT

PARTIES AND PROPERTY
This Residential Rental Agreement (the "Agreement") is made between {{.landlord_name}} ("Landlord") and {{.tenant_name}} ("Tenant") for the rental of the property located at:

{{.property_address}}

1. TERM
The term of this Agreement is {{.duration}}, commencing on {{.start_date}} and ending on {{.end_date}}.

2. RENT
Tenant agrees to pay rent of {{.rent_amount}} per month, due on the first day of each month. A late fee of $50.00 applies to payments received after the 5th day of the month.

3. SECURITY DEPOSIT
Tenant shall pay a security deposit of {{.security_deposit}} upon execution of this Agreement.

4. USE OF PREMISES
The Premises shall be used solely as a private residential dwelling.

5. TERMINATION
Either party may terminate this Agreement upon thirty (30) days' written notice.

6. ADDITIONAL TERMS
{{.terms}}

SIGNATURES
LANDLORD: {{.landlord_name}}    ______________________
TENANT: {{.tenant_name}}    ______________________
`

const employmentTemplate = `EMPLOYMENT AGREEMENT

PARTIES
This Employment Agreement (the "Agreement") is made between {{.employer_name}} (the "Company") and {{.employee_name}} (the "Employee").

1. POSITION AND DUTIES
Employee is employed in the position of {{.job_title}} and agrees to perform the duties assigned by the Company.

2. TERM
Employment commences on {{.joining_date}} and continues until terminated in accordance with this Agreement.

3. COMPENSATION
Employee shall receive a salary of {{.salary}} per year, payable under the Company's regular payroll practices.

4. PROBATIONARY PERIOD
Employment is subject to a probationary period of {{.probation_period}}.

5. CONFIDENTIALITY
Employee shall keep the Company's confidential information confidential during and after employment.

6. TERMINATION
Either party may terminate this Agreement upon two (2) weeks' written notice.

SIGNATURES
COMPANY: {{.employer_name}}    ______________________
EMPLOYEE: {{.employee_name}}    ______________________
`

const ndaTemplate = `NON-DISCLOSURE AGREEMENT

PARTIES
This Non-Disclosure Agreement (the "Agreement") is made between {{.disclosing_party}} (the "Disclosing Party") and {{.receiving_party}} (the "Receiving Party").

1. CONFIDENTIAL INFORMATION
"Confidential Information" means:

{{.confidential_info}}

2. OBLIGATIONS
Receiving Party shall hold all Confidential Information in strict confidence and shall not disclose it to any third party without prior written consent.

3. TERM
This Agreement is effective as of {{.effective_date}} and remains in effect for {{.nda_duration}}.

4. RETURN OF INFORMATION
Upon request, Receiving Party shall return or destroy all materials containing Confidential Information.

5. GOVERNING LAW
This Agreement is governed by the laws of {{.governing_state}}.

SIGNATURES
DISCLOSING PARTY: {{.disclosing_party}}    ______________________
RECEIVING PARTY: {{.receiving_party}}    ______________________
`

const otherTemplate = `LEGAL AGREEMENT

PARTIES
This Agreement is made between the parties as specified.

TERMS
{{.custom_agreement}}

SIGNATURES
PARTY 1: ______________________
PARTY 2: ______________________
`

var agreementTemplates = map[agreements.Kind]*template.Template{
	agreements.KindService:    mustTemplate("service", serviceTemplate),
	agreements.KindRental:     mustTemplate("rental", rentalTemplate),
	agreements.KindEmployment: mustTemplate("employment", employmentTemplate),
	agreements.KindNDA:        mustTemplate("nda", ndaTemplate),
	agreements.KindOther:      mustTemplate("other", otherTemplate),
}

func mustTemplate(name, body string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=zero").Parse(body))
}

// renderAgreement fills the category template. Blank optional fields fall
// back to a default or a visible placeholder.
func renderAgreement(kind agreements.Kind, data map[string]string) (string, error) {
	tmpl, ok := agreementTemplates[kind]
	if !ok {
		return "", fmt.Errorf("no template for agreement type %q", kind)
	}

	values := make(map[string]string, len(data))
	for _, field := range agreements.Fields(kind) {
		v := strings.TrimSpace(data[field])
		if v == "" {
			v = fieldDefaults[field]
		}
		if v == "" {
			v = notSpecified
		}
		values[field] = v
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, values); err != nil {
		return "", fmt.Errorf("render %s agreement: %w", kind, err)
	}
	return sb.String(), nil
}
