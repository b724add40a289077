package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"kalshi-trader/internal/stats"
)

func newOddsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Betting statistics calculations",
		Long: `Convert implied probabilities to betting odds and size stakes.

All commands take the win probability as a value in [0, 1].`,
	}

	cmd.AddCommand(newOddsAmericanCmd())
	cmd.AddCommand(newOddsEVCmd())
	cmd.AddCommand(newOddsKellyCmd())

	return cmd
}

func newOddsAmericanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "american <probability>",
		Short: "Convert implied probability to American odds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			probability, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}

			calc := stats.NewCalculator(probability)
			american, err := calc.ImpliedProbabilityToAmerican(probability)
			if err != nil {
				return err
			}
			decimal, err := calc.AmericanToDecimal(american)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]float64{
					"probability":   probability,
					"american_odds": american,
					"decimal_odds":  decimal,
					"net_odds":      decimal - 1,
				})
			}
			output.Printf("American: %+.2f\n", american)
			output.Printf("Decimal:  %.4f\n", decimal)
			output.Printf("Net:      %.4f\n", decimal-1)
			return nil
		},
	}
}

func newOddsEVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ev <probability>",
		Short: "Expected value of a stake at the probability's American odds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			stake, _ := cmd.Flags().GetFloat64("stake")

			probability, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}

			calc := stats.NewCalculator(probability)
			american, err := calc.ImpliedProbabilityToAmerican(probability)
			if err != nil {
				return err
			}
			ev, err := calc.ExpectedValue(probability, american, stake)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]float64{
					"probability":    probability,
					"american_odds":  american,
					"stake":          stake,
					"expected_value": ev,
				})
			}
			output.Printf("American odds:  %+.2f\n", american)
			output.Printf("Expected value: %.4f\n", ev)
			return nil
		},
	}

	cmd.Flags().Float64("stake", 1.0, "stake amount")

	return cmd
}

func newOddsKellyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kelly <probability>",
		Short: "Optimal Kelly stake fraction for the probability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			probability, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}

			calc := stats.NewCalculator(probability)
			american, err := calc.ImpliedProbabilityToAmerican(probability)
			if err != nil {
				return err
			}
			size, err := calc.KellyCriterion()
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]float64{
					"probability":      probability,
					"american_odds":    american,
					"optimal_bet_size": size,
				})
			}
			output.Printf("American odds:    %+.2f\n", american)
			output.Printf("Optimal bet size: %.4f\n", size)
			if size == 0 {
				output.Dim("No edge at these odds; sitting out.")
			}
			return nil
		},
	}
}
