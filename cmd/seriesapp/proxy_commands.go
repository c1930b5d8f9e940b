package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seriesapp/internal/cache"
	"seriesapp/internal/orchestrator"
)

func newProxyCommand(ctx *commandContext) *cobra.Command {
	proxyCmd := &cobra.Command{
		Use:   "proxy",
		Short: "Show or change how downloads reach the feed host",
	}

	proxyCmd.AddCommand(newProxyShowCommand(ctx))
	proxyCmd.AddCommand(newProxySetCommand(ctx))

	return proxyCmd
}

func newProxyShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved proxy settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			defer release()

			settings, err := s.repo.LoadSettings()
			if err != nil && !cache.IsMiss(err) {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), settings)
			}
			p := orchestrator.ProxyOf(settings)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mode:       %s\n", p.Mode())
			fmt.Fprintf(out, "Use system: %s\n", yesNo(settings.ProxyUseSystem))
			fmt.Fprintf(out, "Address:    %s\n", settings.ProxyAddress)
			fmt.Fprintf(out, "Port:       %d\n", settings.ProxyPort)
			if cache.IsMiss(err) {
				fmt.Fprintln(out, "Settings file not found; defaults shown")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output settings as JSON")
	return cmd
}

func newProxySetCommand(ctx *commandContext) *cobra.Command {
	var useSystem bool
	var none bool
	var address string
	var port int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save new proxy settings",
		Example: "  seriesapp proxy set --system\n" +
			"  seriesapp proxy set --address proxy.lan --port 3128\n" +
			"  seriesapp proxy set --none",
		RunE: func(cmd *cobra.Command, args []string) error {
			chosen := 0
			for _, set := range []bool{useSystem, none, address != ""} {
				if set {
					chosen++
				}
			}
			if chosen != 1 {
				return errors.New("choose exactly one of --system, --address or --none")
			}
			if none {
				address, port = "", 0
			}

			s, release, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			defer release()

			if err := s.orch.SetProxyConfig(useSystem, address, port); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proxy: %s\n", s.client.Proxy())
			return nil
		},
	}

	cmd.Flags().BoolVar(&useSystem, "system", false, "Use the proxy from the environment (HTTPS_PROXY, NO_PROXY)")
	cmd.Flags().BoolVar(&none, "none", false, "Connect directly")
	cmd.Flags().StringVar(&address, "address", "", "Proxy host name or URL")
	cmd.Flags().IntVar(&port, "port", 0, "Proxy port")
	return cmd
}
