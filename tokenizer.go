package main

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer counts tokens in extracted text.
type Tokenizer interface {
	CountTokens(text string) int
}

// TiktokenWrapper adapts a tiktoken encoding to Tokenizer.
type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

// HFTokenizerWrapper adapts a HuggingFace tokenizer.json to Tokenizer.
type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		log.Warn().Err(err).Msg("HuggingFace tokenizer failed to encode text")
		return 0
	}
	return len(en.Tokens)
}

const (
	tokenizerTiktoken    = "tiktoken"
	tokenizerHuggingFace = "huggingface"

	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// loadTokenizer returns the tokenizer backend named by kind. For
// huggingface, file (a local tokenizer.json) takes precedence over model.
func loadTokenizer(kind, model, file string) (Tokenizer, error) {
	switch strings.ToLower(kind) {
	case "", tokenizerTiktoken:
		return loadTiktoken(model)
	case tokenizerHuggingFace:
		return loadHuggingFace(model, file)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use '%s' or '%s'", kind, tokenizerTiktoken, tokenizerHuggingFace)
	}
}

// loadTiktoken returns a tokenizer for model, falling back to the default
// model when the name is unknown.
func loadTiktoken(model string) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		log.Warn().Err(err).Str("model", model).Str("fallback", defaultTiktokenModel).
			Msg("Tiktoken model not found, using default")
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

// loadHuggingFace loads a tokenizer.json from file, or from the HuggingFace
// hub cache for model (downloading it when missing).
func loadHuggingFace(model, file string) (Tokenizer, error) {
	if file != "" {
		htk, err := pretrained.FromFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", file, err)
		}
		return &HFTokenizerWrapper{htk: htk}, nil
	}

	if model == "" {
		model = defaultHFModel
	}
	log.Info().Str("model", model).Msg("Loading HuggingFace tokenizer (this may download files)")
	configPath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	htk, err := pretrained.FromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configPath, err)
	}
	return &HFTokenizerWrapper{htk: htk}, nil
}
