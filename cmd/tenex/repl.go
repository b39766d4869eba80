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
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tenex-go/tenex/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "line-oriented REPL surface (no alt screen)",
	RunE:  runREPL,
}

func runREPL(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Println(repl.HelpText)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("tenex> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		out := app.repl.Dispatch(scanner.Text())
		if out != "" {
			fmt.Println(out)
		}
		if app.repl.Quit {
			return nil
		}
	}
}
