package gemini

import (
	"context"
	"io"
	"strings"

	"github.com/fwojciec/wikidoc"
	"google.golang.org/genai"
)

// DefaultModel answers questions.
const DefaultModel = "gemini-2.5-flash"

// SystemPrompt instructs the model to answer only from the supplied facts.
const SystemPrompt = `Du bist ein hilfreicher Assistent, der auf Basis einer Wissensdatenbank einer Schule den Schülerinnen und Schülern hilft, Fragen zu beantworten. Verwende bei der Beantwortung nur die Information, die in Folge im Bereich FAKTEN angegeben sind. Falls du eine Frage darauf basierend nicht beantworten kannst, sage "Das weiß ich leider nicht".`

// Ensure Asker implements wikidoc.Asker at compile time.
var _ wikidoc.Asker = (*Asker)(nil)

// Asker implements wikidoc.Asker using Google Gemini. It retrieves the
// nearest documents for the question and passes them as facts.
type Asker struct {
	client   *genai.Client
	embedder wikidoc.Embedder
	index    wikidoc.IndexService
	model    string

	// Limit is the number of documents passed as facts.
	Limit int
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, embedder wikidoc.Embedder, index wikidoc.IndexService) *Asker {
	return &Asker{
		client:   client,
		embedder: embedder,
		index:    index,
		model:    DefaultModel,
		Limit:    wikidoc.DefaultSearchLimit,
	}
}

// Ask answers a natural language question from the indexed corpus.
// Returns ENOTFOUND if the index holds no matching documents.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	results, err := a.facts(ctx, question)
	if err != nil {
		return "", err
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, questionContents(question), BuildConfig(results))
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", wikidoc.Errorf(wikidoc.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// AskStream is like Ask but writes the answer to w chunk by chunk as the
// model generates it. Text written before a failure stays written.
func (a *Asker) AskStream(ctx context.Context, question string, w io.Writer) error {
	results, err := a.facts(ctx, question)
	if err != nil {
		return err
	}

	for chunk, err := range a.client.Models.GenerateContentStream(ctx, a.model, questionContents(question), BuildConfig(results)) {
		if err != nil {
			return err
		}
		if chunk == nil {
			continue
		}
		if _, err := io.WriteString(w, chunk.Text()); err != nil {
			return wikidoc.Errorf(wikidoc.EINTERNAL, "write answer: %v", err)
		}
	}
	return nil
}

// facts retrieves the documents nearest to the question.
func (a *Asker) facts(ctx context.Context, question string) ([]*wikidoc.SearchResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, wikidoc.Errorf(wikidoc.EINVALID, "question required")
	}

	vector, err := a.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	results, err := a.index.Search(ctx, vector, wikidoc.SearchOptions{Limit: a.Limit})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, wikidoc.Errorf(wikidoc.ENOTFOUND, "no indexed documents found")
	}
	return results, nil
}

func questionContents(question string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(question, genai.RoleUser)}
}

// BuildConfig returns the GenerateContentConfig carrying the system prompt
// and the facts drawn from results.
func BuildConfig(results []*wikidoc.SearchResult) *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: BuildSystemInstruction(results)}},
		},
		Temperature: &temp,
	}
}

// BuildSystemInstruction appends the FAKTEN section to SystemPrompt.
func BuildSystemInstruction(results []*wikidoc.SearchResult) string {
	return SystemPrompt + "\n\nFAKTEN\n\n" + wikidoc.FormatFacts(results)
}
