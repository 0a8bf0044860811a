package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	realminvite "github.com/dep2p/go-realminvite"
	"github.com/dep2p/go-realminvite/config"
)

// rootFlags 公共参数
type rootFlags struct {
	configFile string
	dataDir    string
	community  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "realminvite",
		Short:         "Build and inspect community invitation links",
		Version:       realminvite.VersionInfo(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "JSON config file")
	pf.StringVar(&flags.dataDir, "data-dir", "", "data directory holding persisted telemetry (empty disables persistence)")
	pf.StringVar(&flags.community, "community", "", "community JSON file")

	root.AddCommand(
		newBuildCmd(flags),
		newParseCmd(flags),
		newRankCmd(flags),
	)
	return root
}

// newApp 按命令行参数创建应用
//
// 未指定 --data-dir 时不打开存储，不写任何文件。
func (f *rootFlags) newApp(extra ...realminvite.Option) (*realminvite.App, error) {
	cfg := config.NewConfig()
	if f.configFile != "" {
		data, err := os.ReadFile(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = config.FromJSON(data); err != nil {
			return nil, err
		}
	}

	opts := []realminvite.Option{realminvite.WithConfig(cfg)}
	if f.dataDir != "" {
		opts = append(opts, realminvite.WithDataDir(f.dataDir), realminvite.WithPersistence(true))
	} else {
		opts = append(opts, realminvite.WithPersistence(false))
	}
	if f.community != "" {
		opts = append(opts, realminvite.WithCommunityFile(f.community))
	}
	return realminvite.New(append(opts, extra...)...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
