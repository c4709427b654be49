// Package gemini implements embedding, question answering and token counting
// on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/wikidoc"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is the model used to embed documents and questions.
const DefaultEmbeddingModel = "gemini-embedding-001"

// Task types understood by the embedding model.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Ensure Embedder implements wikidoc.Embedder at compile time.
var _ wikidoc.Embedder = (*Embedder)(nil)

// Embedder implements wikidoc.Embedder using Gemini embeddings.
type Embedder struct {
	client   *genai.Client
	model    string
	taskType string
}

// NewEmbedder creates an Embedder for the given model and task type.
// An empty model selects DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model, taskType string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model, taskType: taskType}
}

// Embed returns the embedding vector of text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, wikidoc.Errorf(wikidoc.EINVALID, "text required")
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{TaskType: e.taskType},
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil || len(result.Embeddings[0].Values) == 0 {
		return nil, wikidoc.Errorf(wikidoc.EINTERNAL, "gemini returned no embedding")
	}

	return result.Embeddings[0].Values, nil
}
