package notify

import "strings"

const (
	ShortlistSubject      = "Congratulations! You've been shortlisted for the next round"
	FinalSelectionSubject = "Congratulations! You have been selected"
)

const shortlistBodyTemplate = `Congratulations! You have been shortlisted for the next round.

Please upload a 1-minute video interview at the following link:
{drive_link}

The video should cover:
- Your background and experience
- Why you're interested in AI/ML
- Your current education status

Deadline: {deadline}
`

const finalSelectionBodyTemplate = `Congratulations! You have been selected for the final round.

We were impressed by your video interview and would like to proceed with the next steps.

Please check your email for further instructions.
`

// ShortlistBody renders the shortlist notification for one recipient.
func ShortlistBody(driveLink, deadline string) string {
	r := strings.NewReplacer("{drive_link}", driveLink, "{deadline}", deadline)
	return r.Replace(shortlistBodyTemplate)
}

// FinalSelectionBody renders the final-selection notification.
func FinalSelectionBody() string {
	return finalSelectionBodyTemplate
}
