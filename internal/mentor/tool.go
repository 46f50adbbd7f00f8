// Package mentor exposes the conviction score to the AI mentor as a Gemini function-calling
// tool. The mentor never computes scores itself; every call goes through the same usecase as
// the HTTP endpoint.
package mentor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pathway/internal/domain/conviction"
	"pathway/internal/logger"
	"pathway/internal/usecase"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const ToolGetCareerConviction = "get_career_conviction"

var ErrUnknownTool = errors.New("unknown tool")

const convictionArgsSchema = `{
	"type": "object",
	"properties": {
		"occupationId": {"type": "string", "minLength": 1, "maxLength": 32}
	},
	"required": ["occupationId"],
	"additionalProperties": false
}`

var convictionArgsLoader = gojsonschema.NewStringLoader(convictionArgsSchema)

type convictionArgs struct {
	OccupationID string `mapstructure:"occupationId"`
}

// ConvictionGetter is satisfied by usecase.CachedConviction.
type ConvictionGetter interface {
	Get(ctx context.Context, userID uuid.UUID, occupationCode string) (conviction.Breakdown, error)
}

func Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name: ToolGetCareerConviction,
		Description: "Returns the student's conviction score (0-100) for one career together with " +
			"its riasec, skills, education and engagement sub-scores.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"occupationId": {
					Type:        genai.TypeString,
					Description: "O*NET-SOC occupation code, for example 15-1252.00.",
				},
			},
			Required: []string{"occupationId"},
		},
	}
}

func Tools() []*genai.Tool {
	return []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{Declaration()}}}
}

type Executor struct {
	convictions ConvictionGetter
	logger      *zap.Logger
}

func NewExecutor(convictions ConvictionGetter, l *zap.Logger) *Executor {
	return &Executor{convictions: convictions, logger: logger.OrNop(l).Named("mentor")}
}

// Execute answers a function call on behalf of userID. Problems the model can recover from
// (bad arguments, unknown occupation) come back inside the response; only infrastructure
// failures are returned as errors.
func (e *Executor) Execute(ctx context.Context, userID uuid.UUID, call *genai.FunctionCall) (*genai.FunctionResponse, error) {
	if call == nil {
		return nil, fmt.Errorf("%w: empty call", usecase.ErrInvalidInput)
	}
	if call.Name != ToolGetCareerConviction {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	resp := &genai.FunctionResponse{ID: call.ID, Name: call.Name}

	args, err := decodeConvictionArgs(call.Args)
	if err != nil {
		resp.Response = map[string]any{"error": err.Error()}
		return resp, nil
	}

	b, err := e.convictions.Get(ctx, userID, args.OccupationID)
	switch {
	case err == nil:
		resp.Response = map[string]any{"output": breakdownMap(b)}
		return resp, nil
	case errors.Is(err, usecase.ErrOccupationNotFound):
		resp.Response = map[string]any{"error": "occupation not found"}
		return resp, nil
	default:
		e.logger.Warn("tool call failed", zap.String("tool", call.Name), zap.Error(err))
		return nil, err
	}
}

func decodeConvictionArgs(raw map[string]any) (convictionArgs, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	result, err := gojsonschema.Validate(convictionArgsLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return convictionArgs{}, fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return convictionArgs{}, fmt.Errorf("invalid arguments: %s", strings.Join(errs, "; "))
	}

	var args convictionArgs
	if err := mapstructure.Decode(raw, &args); err != nil {
		return convictionArgs{}, fmt.Errorf("invalid arguments: %w", err)
	}
	args.OccupationID = strings.TrimSpace(args.OccupationID)
	if args.OccupationID == "" {
		return convictionArgs{}, errors.New("invalid arguments: occupationId is blank")
	}
	return args, nil
}

func breakdownMap(b conviction.Breakdown) map[string]any {
	return map[string]any{
		"total":      b.Total,
		"riasec":     b.Riasec,
		"skills":     b.Skills,
		"education":  b.Education,
		"engagement": b.Engagement,
	}
}
