package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wordgrid/internal/models"
)

// EmailService delivers generated puzzles via Amazon SES
type EmailService struct {
	client   *sesv2.Client
	from     string
	fromName string
	enabled  bool
	debug    bool
}

// NewEmailService creates a new email service. An empty from address creates
// a disabled service that skips all sends.
func NewEmailService(awsRegion, fromEmail, fromName string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:   sesv2.NewFromConfig(cfg),
		from:     fromEmail,
		fromName: fromName,
		enabled:  true,
		debug:    debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPuzzle emails a connections puzzle: the shuffled board up top, the
// answer key below
func (s *EmailService) SendPuzzle(ctx context.Context, toEmail string, puzzle models.Puzzle, puzzleID string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): puzzle %s to %s", puzzleID, toEmail)
		return nil
	}

	subject := "Your Wordgrid Connections Puzzle"
	textBody := buildPuzzleText(puzzle, puzzleID)
	htmlBody := buildPuzzleHTML(puzzle, puzzleID)

	if s.debug {
		log.Printf("[DEBUG] Sending puzzle email: to=%s, puzzle=%s", toEmail, puzzleID)
	}

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func buildPuzzleText(puzzle models.Puzzle, puzzleID string) string {
	var b strings.Builder
	b.WriteString("Group these words into sets of four:\n\n")
	for i, word := range puzzle.AllWords {
		if i > 0 {
			if i%4 == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString(word)
	}
	b.WriteString("\n\n--- ANSWER KEY (no peeking) ---\n")
	for _, difficulty := range sortedDifficulties(puzzle) {
		for name, words := range puzzle.Categories[difficulty] {
			fmt.Fprintf(&b, "%s — %s: %s\n", difficulty, name, strings.Join(words, ", "))
		}
	}
	fmt.Fprintf(&b, "\nPuzzle ID: %s\n", puzzleID)
	return b.String()
}

func buildPuzzleHTML(puzzle models.Puzzle, puzzleID string) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif; color: #333;">`)
	b.WriteString("<h2>Group these words into sets of four</h2>")
	b.WriteString(`<table cellpadding="8" style="border-collapse: collapse;">`)
	for i, word := range puzzle.AllWords {
		if i%4 == 0 {
			b.WriteString("<tr>")
		}
		fmt.Fprintf(&b, `<td style="border: 1px solid #ccc; text-align: center;">%s</td>`, html.EscapeString(word))
		if i%4 == 3 {
			b.WriteString("</tr>")
		}
	}
	b.WriteString("</table>")
	b.WriteString("<h3>Answer key</h3><ul>")
	for _, difficulty := range sortedDifficulties(puzzle) {
		for name, words := range puzzle.Categories[difficulty] {
			fmt.Fprintf(&b, "<li><strong>%s</strong> — %s: %s</li>",
				html.EscapeString(string(difficulty)), html.EscapeString(name),
				html.EscapeString(strings.Join(words, ", ")))
		}
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, `<p style="font-size: 12px; color: #666;">Puzzle ID: %s</p>`, html.EscapeString(puzzleID))
	b.WriteString("</body></html>")
	return b.String()
}

// sortedDifficulties lists the puzzle's tiers in canonical order, with any
// custom tiers appended alphabetically.
func sortedDifficulties(puzzle models.Puzzle) []models.Difficulty {
	var ordered []models.Difficulty
	seen := make(map[models.Difficulty]bool)
	for _, d := range models.DefaultDifficulties() {
		if _, ok := puzzle.Categories[d]; ok {
			ordered = append(ordered, d)
			seen[d] = true
		}
	}
	var extra []models.Difficulty
	for d := range puzzle.Categories {
		if !seen[d] {
			extra = append(extra, d)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(ordered, extra...)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.from
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.from)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}
	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
