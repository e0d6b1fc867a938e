package cli

import (
	"strings"

	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// protocolFlag is a pflag.Value accepting protocol slugs and aliases.
type protocolFlag struct {
	value domain.Protocol
}

var _ pflag.Value = (*protocolFlag)(nil)

func (f *protocolFlag) String() string { return string(f.value) }

func (f *protocolFlag) Set(s string) error {
	p, err := domain.ParseProtocol(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	f.value = p
	return nil
}

func (f *protocolFlag) Type() string { return "protocol" }

// registerProtocolFlag adds --protocol with shell completion of the slugs.
func registerProtocolFlag(cmd *cobra.Command, f *protocolFlag, usage string) {
	cmd.Flags().VarP(f, "protocol", "p", usage)
	_ = cmd.RegisterFlagCompletionFunc("protocol", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(domain.Protocols))
		for _, p := range domain.Protocols {
			names = append(names, string(p)+"\t"+p.DisplayName())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
