package main

import (
	"fmt"
	"time"

	"github.com/evdnx/hlhb/host"
	"github.com/evdnx/hlhb/logger"
	"github.com/evdnx/hlhb/risk"
	"github.com/evdnx/hlhb/types"
	"github.com/spf13/cobra"
)

func newStoplossCmd(opts *options) *cobra.Command {
	var (
		pair   string
		profit float64
		rate   float64
		side   string
	)
	cmd := &cobra.Command{
		Use:   "stoploss",
		Short: "Print the custom stop-loss distance for a pair and profit ratio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sd, err := parseSide(side)
			if err != nil {
				return err
			}
			s, err := opts.strategy(logger.NewNop())
			if err != nil {
				return err
			}
			trade := &types.Trade{Pair: pair, Side: sd}
			d := s.CustomStoploss(pair, trade, time.Now(), rate, profit)
			out := cmd.OutOrStdout()
			switch {
			case d == risk.KeepStop:
				_, err = fmt.Fprintf(out, "%s profit=%g stoploss=%g (keep initial stop)\n", pair, profit, d)
			case rate > 0:
				stop := risk.StopPrice(rate, d, trade.IsShort())
				_, err = fmt.Fprintf(out, "%s profit=%g stoploss=%g stop_price=%g\n", pair, profit, d, stop)
			default:
				_, err = fmt.Fprintf(out, "%s profit=%g stoploss=%g\n", pair, profit, d)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&pair, "pair", "ETH/USDT", "traded pair")
	cmd.Flags().Float64Var(&profit, "profit", 0, "current profit ratio, e.g. 0.05")
	cmd.Flags().Float64Var(&rate, "rate", 0, "current price; when set the stop price is printed too")
	cmd.Flags().StringVar(&side, "side", string(types.Long), "long or short")
	return cmd
}

func newLeverageCmd(opts *options) *cobra.Command {
	var (
		pair     string
		proposed float64
		maxLev   float64
		side     string
	)
	cmd := &cobra.Command{
		Use:   "leverage",
		Short: "Print the leverage the strategy asks for, and the value after clamping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.strategy(logger.NewNop())
			if err != nil {
				return err
			}
			h, err := host.New(s, logger.NewNop())
			if err != nil {
				return err
			}
			sd, err := parseSide(side)
			if err != nil {
				return err
			}
			now := time.Now()
			raw := s.Leverage(pair, now, 0, proposed, maxLev, "", sd)
			clamped := h.Leverage(pair, now, 0, proposed, maxLev, "", sd)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s leverage=%g clamped=%g (max %g)\n", pair, raw, clamped, maxLev)
			return err
		},
	}
	cmd.Flags().StringVar(&pair, "pair", "ETH/USDT", "traded pair")
	cmd.Flags().Float64Var(&proposed, "proposed", 1, "leverage proposed by the host")
	cmd.Flags().Float64Var(&maxLev, "max", 10, "maximum leverage allowed on the pair")
	cmd.Flags().StringVar(&side, "side", string(types.Long), "long or short")
	return cmd
}

func parseSide(s string) (types.Side, error) {
	switch sd := types.Side(s); sd {
	case types.Long, types.Short:
		return sd, nil
	}
	return "", fmt.Errorf("invalid side %q", s)
}
