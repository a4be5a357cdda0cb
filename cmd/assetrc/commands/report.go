package commands

import (
	"context"

	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/log"
	"github.com/walteh/assetrc/pkg/operation"
	"github.com/walteh/assetrc/pkg/status"
)

// printReport prints the files of rep grouped by application
func printReport(ctx context.Context, o *opts.RootOpts, p config.Pipeline, rep *operation.Report) {
	tasks := make([]string, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, string(t.Kind))
	}

	for _, app := range p.Apps {
		var files []status.FileInfo
		for _, f := range rep.Files {
			if f.App == app {
				files = append(files, f)
			}
		}
		if len(files) == 0 {
			continue
		}

		o.Logger.StartAppOperation(ctx, log.AppOperation{
			Name:        app,
			Tasks:       tasks,
			Destination: p.Layout.Paths(app).Static.Root,
		})
		for _, f := range files {
			o.Logger.LogFileOperation(ctx, log.FromFileInfo(f))
		}
		o.Logger.EndAppOperation(ctx)
		o.Logger.LogNewline()
	}
}

func summary(rep *operation.Report) (created, modified, unchanged, removed int) {
	counts := rep.Counts()
	return counts[status.StatusNew], counts[status.StatusModified], counts[status.StatusUnchanged], counts[status.StatusDeleted]
}
