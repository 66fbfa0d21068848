package main

import (
	"fmt"

	"github.com/goliatone/go-chartview/components/dashboard"
)

type validateCmd struct {
	Manifests []string `arg:"" type:"existingfile" help:"Manifest files to verify."`
}

func (cmd *validateCmd) Run(rc *runContext) error {
	failed := 0
	for _, path := range cmd.Manifests {
		doc, err := dashboard.ReadManifest(path)
		if err == nil {
			err = dashboard.VerifyManifest(doc)
		}
		if err != nil {
			failed++
			fmt.Fprintf(rc.out, "✗ %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(rc.out, "✓ %s (%d widgets, %d datasets)\n", path, len(doc.Widgets), len(doc.Datasets))
	}
	if failed > 0 {
		return fmt.Errorf("chartctl: %d of %d manifests failed", failed, len(cmd.Manifests))
	}
	return nil
}
