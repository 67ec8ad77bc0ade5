// Package outreach drafts the email a candidate sends to a recruiter.
package outreach

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jobmatchpro/backend/models"
)

const fallbackSlug = "entreprise"

var bodyTemplate = template.Must(template.New("body").Parse(`Bonjour,

Je vous contacte concernant le poste « {{.JobTitle}} » au sein de {{.Company}}.

Mon profil et mon expérience sont étroitement liés à ce type de poste, comme détaillé dans mon CV.

Résumé rapide de mon profil :
{{.CVSummary}}

Je serais ravi d'échanger avec vous pour discuter de ma candidature.

Cordialement,
{{.CandidateName}}
{{.CandidateEmail}}`))

// Draft renders the outreach email. A missing HR address is derived from
// the company name. Nothing is sent.
func Draft(req models.ContactRequest) (models.ContactResponse, error) {
	req = trim(req)

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, req); err != nil {
		return models.ContactResponse{}, fmt.Errorf("failed to render email: %w", err)
	}

	to := req.HREmail
	if to == "" {
		to = RecruitmentAddress(req.Company)
	}

	return models.ContactResponse{
		To:      to,
		Subject: fmt.Sprintf("Candidature - %s - %s", req.JobTitle, req.CandidateName),
		Body:    strings.TrimSpace(body.String()),
	}, nil
}

// RecruitmentAddress guesses a recruitment mailbox for a company
func RecruitmentAddress(company string) string {
	return "recrutement@" + Slug(company) + ".com"
}

// Slug lowercases company, strips accents and drops everything that is not
// a letter or a digit
func Slug(company string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, company)
	if err != nil {
		plain = company
	}

	var b strings.Builder
	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

func trim(req models.ContactRequest) models.ContactRequest {
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.Company = strings.TrimSpace(req.Company)
	req.HREmail = strings.TrimSpace(req.HREmail)
	req.CandidateName = strings.TrimSpace(req.CandidateName)
	req.CandidateEmail = strings.TrimSpace(req.CandidateEmail)
	req.CVSummary = strings.TrimSpace(req.CVSummary)
	return req
}
