package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gophdrop/internal/filex"
	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
)

var errUsage = errors.New("usage")

// Upload reads a local file and stores it under its base name.
//
//	upload <path> [public|private] [--if-absent]
func (a *App) Upload(ctx context.Context, args []string) error {
	var (
		path       string
		visibility string
		ifAbsent   bool
	)
	for _, arg := range args {
		switch {
		case arg == "--if-absent":
			ifAbsent = true
		case path == "":
			path = arg
		case visibility == "":
			visibility = arg
		default:
			return fmt.Errorf("%w: upload <path> [public|private] [--if-absent]", errUsage)
		}
	}
	if path == "" {
		return fmt.Errorf("%w: upload <path> [public|private] [--if-absent]", errUsage)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	msg, err := a.client.Upload(ctx, filepath.Base(path), visibility, content, ifAbsent)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	files, err := a.client.List(ctx)
	if err != nil {
		return err
	}

	a.printFiles(files)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	files, err := a.client.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	a.printFiles(files)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <name>", errUsage)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	msg, err := a.client.Delete(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %s\n", msg, args[0])
	return nil
}

// Download saves a file to dest, or to the current directory under the
// file's own name when dest is omitted or is a directory.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: download <name> [dest]", errUsage)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	entry, content, err := a.client.Download(ctx, args[0])
	if err != nil {
		return err
	}

	dest := entry.Name
	if len(args) == 2 {
		dest = args[1]
		if filex.IsDir(dest) {
			dest = filepath.Join(dest, entry.Name)
		}
	}

	if err := filex.WriteAtomic(dest, content, 0o600); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", dest, len(content))
	return nil
}

func (a *App) printFiles(files []pb.FileEntry) {
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tOWNER\tSIZE\tMODIFIED\tVISIBILITY")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", f.Name, f.Owner, f.SizeBytes, f.ModifiedAt.Format(time.DateTime), f.Visibility)
	}
	_ = tw.Flush()
}
