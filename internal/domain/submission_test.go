package domain

import (
	"errors"
	"testing"
)

func TestReconcileSubmission(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload SubmissionPayload
		want    Submission
	}{
		{
			name: "current payload passes through",
			payload: CurrentPayload{
				WalletAddress:     " 0xABC ",
				FullName:          "Jane",
				Email:             "jane@x.com",
				ProfessionalTitle: "Engineer",
				LinkedInURL:       "https://linkedin.com/in/jane",
				WebsiteURL:        "https://jane.dev",
				Bio:               "Builds things",
			},
			want: Submission{
				WalletAddress:     "0xabc",
				FullName:          "Jane",
				Email:             "jane@x.com",
				ProfessionalTitle: "Engineer",
				LinkedInURL:       "https://linkedin.com/in/jane",
				WebsiteURL:        "https://jane.dev",
				Bio:               "Builds things",
			},
		},
		{
			name: "current payload without bio gets one",
			payload: CurrentPayload{
				WalletAddress:     "0xabc",
				FullName:          "Jane",
				Email:             "jane@x.com",
				ProfessionalTitle: "Engineer",
			},
			want: Submission{
				WalletAddress:     "0xabc",
				FullName:          "Jane",
				Email:             "jane@x.com",
				ProfessionalTitle: "Engineer",
				Bio:               "Professional with expertise in Engineer",
			},
		},
		{
			name: "legacy payload maps experience and portfolio",
			payload: LegacyPayload{
				WalletAddress: "0xDEF",
				FullName:      "Ada",
				Email:         "ada@x.com",
				Experience:    "Mathematician",
				Portfolio:     "https://ada.example.com",
			},
			want: Submission{
				WalletAddress:     "0xdef",
				FullName:          "Ada",
				Email:             "ada@x.com",
				ProfessionalTitle: "Mathematician",
				WebsiteURL:        "https://ada.example.com",
				Bio:               "Professional with expertise in Mathematician",
			},
		},
		{
			name: "legacy payload keeps explicit bio",
			payload: LegacyPayload{
				WalletAddress: "0xdef",
				FullName:      "Ada",
				Email:         "ada@x.com",
				Experience:    "Mathematician",
				Bio:           "Wrote the first program",
			},
			want: Submission{
				WalletAddress:     "0xdef",
				FullName:          "Ada",
				Email:             "ada@x.com",
				ProfessionalTitle: "Mathematician",
				Bio:               "Wrote the first program",
			},
		},
		{
			name: "title present, website from portfolio",
			payload: LegacyPayload{
				WalletAddress:     "0xdef",
				FullName:          "Ada",
				Email:             "ada@x.com",
				ProfessionalTitle: "Engineer",
				Portfolio:         "https://portfolio.example",
			},
			want: Submission{
				WalletAddress:     "0xdef",
				FullName:          "Ada",
				Email:             "ada@x.com",
				ProfessionalTitle: "Engineer",
				WebsiteURL:        "https://portfolio.example",
				Bio:               "Professional with expertise in Engineer",
			},
		},
		{
			name: "website present, title from experience",
			payload: LegacyPayload{
				WalletAddress: "0xdef",
				FullName:      "Ada",
				Email:         "ada@x.com",
				Experience:    "Engineer",
				WebsiteURL:    "https://site.example",
			},
			want: Submission{
				WalletAddress:     "0xdef",
				FullName:          "Ada",
				Email:             "ada@x.com",
				ProfessionalTitle: "Engineer",
				WebsiteURL:        "https://site.example",
				Bio:               "Professional with expertise in Engineer",
			},
		},
		{
			name: "newer fields win over legacy ones",
			payload: LegacyPayload{
				WalletAddress:     "0xdef",
				FullName:          "Ada",
				Email:             "ada@x.com",
				ProfessionalTitle: "Engineer",
				Experience:        "Mathematician",
				WebsiteURL:        "https://site.example",
				Portfolio:         "https://portfolio.example",
			},
			want: Submission{
				WalletAddress:     "0xdef",
				FullName:          "Ada",
				Email:             "ada@x.com",
				ProfessionalTitle: "Engineer",
				WebsiteURL:        "https://site.example",
				Bio:               "Professional with expertise in Engineer",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileSubmission(tt.payload)
			if got != tt.want {
				t.Errorf("ReconcileSubmission() =\n%+v\nwant\n%+v", got, tt.want)
			}
		})
	}
}

func TestSubmissionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
	}{
		{"valid", func(*Submission) {}, ""},
		{"missing wallet", func(s *Submission) { s.WalletAddress = "" }, "walletAddress"},
		{"missing name", func(s *Submission) { s.FullName = "" }, "fullName"},
		{"missing email", func(s *Submission) { s.Email = "" }, "email"},
		{"missing title", func(s *Submission) { s.ProfessionalTitle = "" }, "professionalTitle"},
		{"bad email", func(s *Submission) { s.Email = "nope" }, "email"},
		{"bad linkedin", func(s *Submission) { s.LinkedInURL = "linkedin" }, "linkedIn"},
		{"bad website scheme", func(s *Submission) { s.WebsiteURL = "ftp://jane.dev" }, "website"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			err := sub.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, verr.Field)
			}
		})
	}
}
