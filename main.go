// main is the entry point for the protein-analyser CLI.
package main

import (
	"os"

	"github.com/AgitatedBuddha/protein-analyser/cmd"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/internal/resultstore"
)

func main() {
	// Commands resolve the store lazily: InitStores runs during command
	// setup, after flags and config are known.
	cmd.SetStoreManager(resultstore.Manager)
	defer resultstore.CloseStores()

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		resultstore.CloseStores()
		os.Exit(1)
	}
}
