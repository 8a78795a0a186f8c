package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the machine models in the wiring tables",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "output as JSON")
}

type modelInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	RotorCount  int      `json:"rotor_count"`
	Stepping    string   `json:"stepping"`
	Plugboard   bool     `json:"plugboard"`
	EntryWheel  string   `json:"entry_wheel,omitempty"`
	Rotors      []string `json:"rotors"`
	FixedRotors []string `json:"fixed_rotors,omitempty"`
	Reflectors  []string `json:"reflectors"`
}

func runModels(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	var infos []modelInfo
	for _, m := range tables.Models() {
		info := modelInfo{
			ID:          m.ID,
			Name:        m.Name,
			RotorCount:  m.RotorCount,
			Stepping:    m.Policy.String(),
			Plugboard:   m.Plugboard,
			Rotors:      m.Rotors(),
			FixedRotors: m.FixedRotors(),
			Reflectors:  m.Reflectors(),
		}
		if m.HasEntryWheel() {
			info.EntryWheel = m.Entry().String()
		}
		infos = append(infos, info)
	}

	if modelsJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%s\n", info.ID)
		fmt.Printf("  Name:       %s\n", info.Name)
		fmt.Printf("  Stepping:   %s, %d rotors\n", info.Stepping, info.RotorCount)
		if len(info.FixedRotors) > 0 {
			fmt.Printf("  Fixed:      %s\n", strings.Join(info.FixedRotors, " "))
		}
		fmt.Printf("  Rotors:     %s\n", strings.Join(info.Rotors, " "))
		fmt.Printf("  Reflectors: %s\n", strings.Join(info.Reflectors, " "))
		fmt.Printf("  Plugboard:  %t\n", info.Plugboard)
		if info.EntryWheel != "" {
			fmt.Printf("  Entry:      %s\n", info.EntryWheel)
		}
		if verbose {
			for _, id := range info.Rotors {
				r, _ := tables.Rotor(id)
				fmt.Printf("    %-7s %s  notches %s\n", id, r.Wiring(), r.Notches)
			}
		}
		fmt.Println()
	}
	return nil
}
