package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/types"
)

const (
	ProviderGCPSpeech = "gcp_speech"

	minAudioBytes = 1 << 10  // 1KB, anything smaller is not a real recording
	maxAudioBytes = 25 << 20 // 25MB upload cap
)

type SpeechService interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string, languageCode string) (*types.TranscriptResult, error)
	Close() error
}

type speechService struct {
	log    *logger.Logger
	client *speech.Client

	defaultLanguage string
	maxRetries      int
}

// NewSpeechService builds the Google Cloud Speech transcriber. Credentials
// come from GOOGLE_APPLICATION_CREDENTIALS_JSON or the standard
// GOOGLE_APPLICATION_CREDENTIALS file path.
func NewSpeechService(baseLog *logger.Logger) (SpeechService, error) {
	if baseLog == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := baseLog.With("service", "SpeechService")

	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	lang := strings.TrimSpace(os.Getenv("SPEECH_LANGUAGE_CODE"))
	if lang == "" {
		lang = "ko-KR"
	}

	ctx := context.Background()

	var c *speech.Client
	var err error
	if creds != "" {
		c, err = speech.NewClient(ctx, option.WithCredentialsFile(creds))
	} else {
		c, err = speech.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	return &speechService{
		log:             slog,
		client:          c,
		defaultLanguage: lang,
		maxRetries:      4,
	}, nil
}

func (s *speechService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *speechService) Transcribe(ctx context.Context, audio []byte, mimeType string, languageCode string) (*types.TranscriptResult, error) {
	// diary recordings are short; keep a strict timeout
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	if len(audio) < minAudioBytes {
		return nil, fmt.Errorf("%w: audio too small (%d bytes)", apperr.ErrInvalidInput, len(audio))
	}
	if len(audio) > maxAudioBytes {
		return nil, fmt.Errorf("%w: audio exceeds %d bytes", apperr.ErrInvalidInput, maxAudioBytes)
	}

	lang := strings.TrimSpace(languageCode)
	if lang == "" {
		lang = s.defaultLanguage
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               lang,
			Encoding:                   inferAudioEncoding(mimeType),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.retry(ctx, func() (*speechpb.RecognizeResponse, error) {
		return s.client.Recognize(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}

	result := parseRecognizeResponse(resp)
	s.log.Info("transcription complete", "language", lang, "chars", len(result.Text))
	return result, nil
}

func inferAudioEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3") || strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus"):
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		// leave unspecified; API can sometimes auto-detect in practice
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

func parseRecognizeResponse(resp *speechpb.RecognizeResponse) *types.TranscriptResult {
	out := &types.TranscriptResult{Provider: ProviderGCPSpeech}
	if resp == nil || len(resp.Results) == 0 {
		return out
	}

	var full strings.Builder
	var confSum float64
	var confN int

	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		alt := r.Alternatives[0]
		if strings.TrimSpace(alt.Transcript) == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(strings.TrimSpace(alt.Transcript))
		confSum += float64(alt.Confidence)
		confN++
	}

	out.Text = strings.TrimSpace(full.String())
	if confN > 0 {
		out.Confidence = confSum / float64(confN)
	}
	return out
}

func (s *speechService) retry(ctx context.Context, fn func() (*speechpb.RecognizeResponse, error)) (*speechpb.RecognizeResponse, error) {
	backoff := 750 * time.Millisecond
	var last error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == s.maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, last
}
