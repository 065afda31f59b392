package init

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	sprof "github.com/synthgen/synthctl/cmd/synth/config/profiles"
	"github.com/synthgen/synthctl/cmd/synth/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name        string        `flag:"name" alias:"n" help:"name of the profile. (default: the current profile)"`
	CA          string        `flag:"ca" metavar:"path/to/ca.crt" help:"CA certificate (PEM) to trust the server"`
	Timeout     time.Duration `flag:"timeout" help:"timeout of each request"`
	LongTimeout time.Duration `flag:"long-timeout" help:"timeout of uploading, downloading and starting generation"`
}

const ARG_API_ROOT = "API_ROOT"

type Option struct {
	projectDir string
}

// WithProjectDir sets the directory where ".synthprofile" is written.
func WithProjectDir(dir string) func(*Option) *Option {
	return func(o *Option) *Option {
		o.projectDir = dir
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{projectDir: "."}
	for _, o := range options {
		option = o(option)
	}

	return flarc.NewCommand(
		"Register a synth server as a profile, and use it in this directory.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_API_ROOT, Required: true,
				Help: "URL of the API of synthetic data server, like https://synth.example.com/api",
			},
		},
		common.NewTaskWithCommonFlag(Task(option.projectDir)),
		flarc.WithDescription(`
Register a synthetic data server into your profile store,
and make the current directory use it.

The name of the profile is given by --name.
When it is not given, the profile name in effect (see --profile) is used.

"{{ .Command }}" writes ".synthprofile" file in the current directory.
Commands run in the directory (or its descendants) use the profile.

Example:

    {{ .Command }} https://synth.example.com/api
    {{ .Command }} --name staging --ca ./ca.crt https://synth-staging.example.com/api
`),
	)
}

func Task(projectDir string) common.SynthTaskWithCommonFlag[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		apiRoot := cl.Args()[ARG_API_ROOT][0]

		profName := flags.Name
		if profName == "" {
			profName = commonFlag.Profile
		}

		newProf := &sprof.SynthProfile{
			ApiRoot:     apiRoot,
			Timeout:     flags.Timeout,
			LongTimeout: flags.LongTimeout,
		}
		if flags.CA != "" {
			pem, err := os.ReadFile(flags.CA)
			if err != nil {
				return fmt.Errorf("failed to read CA certificate (%s): %w", flags.CA, err)
			}
			newProf.Cert.CA = base64.StdEncoding.EncodeToString(pem)
		}
		if err := newProf.Verify(); err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}

		profStore, err := sprof.LoadProfileStore(commonFlag.ProfileStore)
		if errors.Is(err, sprof.ErrProfileStoreNotFound) {
			// ok.
			profStore = sprof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf("failed to load profile store (%s): %w", commonFlag.ProfileStore, err)
		}

		profStore[profName] = newProf
		if err := profStore.Save(commonFlag.ProfileStore); err != nil {
			return fmt.Errorf("failed to save profile store (%s): %w", commonFlag.ProfileStore, err)
		}
		logger.Printf("profile %s is saved to %s", profName, commonFlag.ProfileStore)

		dotfile := filepath.Join(projectDir, ".synthprofile")
		if err := os.WriteFile(dotfile, []byte(profName+"\n"), os.FileMode(0644)); err != nil {
			return fmt.Errorf("failed to write %s: %w", dotfile, err)
		}
		return nil
	}
}
