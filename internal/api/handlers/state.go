package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rohits-web03/sharevault/internal/utils"
)

var errInvalidState = errors.New("invalid state format")

// GenerateState creates a random state string carrying optional metadata
// (e.g. the "login" or "register" flow).
func GenerateState(data map[string]string) (string, error) {
	randomPart, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	payloadBytes, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state data: %w", err)
	}
	payloadPart := base64.RawURLEncoding.EncodeToString(payloadBytes)

	return randomPart + "." + payloadPart, nil
}

// DecodeState decodes the metadata back from the state string
func DecodeState(state string) (map[string]string, error) {
	randomPart, payloadPart, ok := strings.Cut(state, ".")
	if !ok || randomPart == "" || strings.Contains(payloadPart, ".") {
		return nil, errInvalidState
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return nil, fmt.Errorf("failed to decode state payload: %w", err)
	}

	var data map[string]string
	if err := json.Unmarshal(payloadBytes, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state JSON: %w", err)
	}

	return data, nil
}
