package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables read by pcv, and passed to extensions.
const (
	EnvServer      = "PCV_SERVER"
	EnvSessionFile = "PCV_SESSION_FILE"
	EnvConfig      = "PCV_CONFIG"
	EnvVerbose     = "PCV_VERBOSE"
)

// RunExtension attempts to find and execute an external pcv-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the resolved server, session file and config file
// in the environment, so that it can share the session of pcv.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "pcv-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		if *Verbose {
			log.Printf("External command %q not found in PATH: %v", name, err)
		}
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if cfg, err := appConfig(); err == nil {
		cmd.Env = append(cmd.Env,
			EnvServer+"="+cfg.Server,
			EnvSessionFile+"="+cfg.SessionFile,
		)
	}
	if path := configPath(); path != "" {
		cmd.Env = append(cmd.Env, EnvConfig+"="+path)
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
