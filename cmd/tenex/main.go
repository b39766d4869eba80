// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tenex-go/tenex/internal/config"
)

var rootCmd = &cobra.Command{
	Use:     "tenex",
	Short:   "tenex - terminal client for relay-based agent threads",
	Long:    `tenex is a terminal client for a decentralized, relay-based agent-messaging substrate: browse projects, follow threads, answer questionnaires, and approve bunker signing requests.`,
	Version: "0.1.0",
	RunE:    runTUI,
}

func init() {
	// config.BindPersistentFlags already registers --nsec, --relay, and
	// --config; only --endpoint is specific to this binary.
	config.BindPersistentFlags(rootCmd)
	rootCmd.PersistentFlags().String("endpoint", "", "backend SSE endpoint (leave empty to run offline)")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(bootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tenex: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.tui.Run()
}
