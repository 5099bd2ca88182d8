package main

import (
	"runtime"
	unitconvrpc "unitconv/rpc"

	"github.com/spf13/cobra"
)

func newBatchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Answer msgpack convert requests read from stdin",
		Long: `Read a stream of msgpack convert packets from stdin and write one result
packet per request to stdout, in input order. Failed conversions are
reported inside their result packet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := intSetting(a, "workers")
			if err != nil {
				return err
			}
			p := unitconvrpc.NewProcessor(workers)
			p.Log = a.log
			return p.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().Int("workers", runtime.NumCPU(), "Requests converted concurrently")
	return cmd
}
