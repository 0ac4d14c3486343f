package reconciler

//go:generate go run go.uber.org/mock/mockgen -source=./strategy.go -destination=./mocks/strategy_mock.go -package=mocks

import (
	"context"
	"fmt"
	cabinModel "studyhall/internal/domains/cabin/model"
	layoutModel "studyhall/internal/domains/layout/model"
	"studyhall/shared/constant"
)

const (
	StrategyExactName    = "exact_name"
	StrategyServerLookup = "server_lookup"
	StrategyPositional   = "positional"
)

// Resolver is the server-side lookup for a layout id. An empty id means no match.
type Resolver interface {
	Resolve(ctx context.Context, venueID, logicalID string) (string, error)
}

// Strategy proposes a physical cabin id for a logical cabin. Empty means no opinion.
// Directory is ordered by cabin_number.
type Strategy struct {
	Name  string
	Match func(ctx context.Context, venueID string, logical layoutModel.LogicalCabin, directory []cabinModel.Cabin) (string, error)
}

// ExactName matches cabin_name against the layout name, case-sensitive.
func ExactName() Strategy {
	return Strategy{
		Name: StrategyExactName,
		Match: func(_ context.Context, _ string, logical layoutModel.LogicalCabin, directory []cabinModel.Cabin) (string, error) {
			for _, cabin := range directory {
				if cabin.CabinName == logical.Name {
					return cabin.ID, nil
				}
			}

			return constant.Empty, nil
		},
	}
}

func ServerLookup(resolver Resolver) Strategy {
	return Strategy{
		Name: StrategyServerLookup,
		Match: func(ctx context.Context, venueID string, logical layoutModel.LogicalCabin, _ []cabinModel.Cabin) (string, error) {
			id, err := resolver.Resolve(ctx, venueID, logical.ID)
			if err != nil {
				return constant.Empty, fmt.Errorf("failed to resolve %s: %w", logical.ID, err)
			}

			return id, nil
		},
	}
}

// Positional reads a trailing "-N" of the layout id as the 1-based index into the directory.
func Positional() Strategy {
	return Strategy{
		Name: StrategyPositional,
		Match: func(_ context.Context, _ string, logical layoutModel.LogicalCabin, directory []cabinModel.Cabin) (string, error) {
			position, ok := logical.Position()
			if !ok || position < 1 || position > len(directory) {
				return constant.Empty, nil
			}

			return directory[position-1].ID, nil
		},
	}
}
