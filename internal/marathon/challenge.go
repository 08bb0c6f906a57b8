package marathon

import (
	"encoding/json"
	"fmt"

	"github.com/runmap/marathon-map/internal/utils"
)

type Challenge struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

func LoadChallenges(filePath string) ([]Challenge, error) {
	buf, err := utils.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	var challenges []Challenge
	if err := json.Unmarshal(buf, &challenges); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return challenges, nil
}

func Progress(challenges []Challenge) (int, int) {
	done := 0
	for _, c := range challenges {
		if c.Completed {
			done += 1
		}
	}
	return done, len(challenges)
}
