package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/springbar/internal/config"
	"github.com/san-kum/springbar/internal/progress"
	"github.com/san-kum/springbar/internal/storage"
	"github.com/spf13/cobra"
)

const kvDir = "kv"

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "save, list, show and delete saved bar groups",
	}
	cmd.PersistentFlags().BoolVar(&useKV, "kv", false, "use the pebble key-value store instead of files")

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "animate the configured bars for --time seconds and save them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var clock time.Duration
			group, err := cfg.BuildGroup(func() time.Duration { return clock }, progress.WithLogger(log))
			if err != nil {
				return err
			}
			frames := int(cfg.Duration/cfg.Dt + 0.5)
			for i := 0; i < frames; i++ {
				if _, err := group.TickAll(cfg.Dt); err != nil {
					log.Warn("frame %d: %v", i, err)
				}
				clock += time.Duration(cfg.Dt * float64(time.Second))
			}
			return saveGroup(cfg, args[0], group)
		},
	}
	saveCmd.Flags().Float64Var(&duration, "time", 0, "seconds to animate before saving (default from config)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved groups",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "restore a saved group and draw it",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "delete a saved group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if useKV {
				kv, err := storage.OpenKV(filepath.Join(cfg.StoreDir, kvDir))
				if err != nil {
					return err
				}
				defer kv.Close()
				return kv.Delete(args[0])
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			return st.Delete(args[0])
		},
	}

	cmd.AddCommand(saveCmd, listCmd, showCmd, deleteCmd)
	return cmd
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	enc, err := storage.ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	st := storage.New(cfg.StoreDir, enc)
	return st, st.Init()
}

func saveGroup(cfg *config.Config, name string, group *progress.Group) error {
	doc := storage.Document{Name: name, Dt: cfg.Dt, Group: group.Save()}

	if useKV {
		kv, err := storage.OpenKV(filepath.Join(cfg.StoreDir, kvDir))
		if err != nil {
			return err
		}
		defer kv.Close()
		doc.ID = name
		doc.Timestamp = time.Now()
		if err := kv.Put(doc); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", name)
		return nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	id, err := st.Save(doc)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", id)
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var docs []storage.Document
	if useKV {
		kv, err := storage.OpenKV(filepath.Join(cfg.StoreDir, kvDir))
		if err != nil {
			return err
		}
		defer kv.Close()
		names, err := kv.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			doc, err := kv.Get(name)
			if err != nil {
				log.Warn("skip %s: %v", name, err)
				continue
			}
			docs = append(docs, *doc)
		}
	} else {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		if docs, err = st.List(); err != nil {
			return err
		}
	}

	if len(docs) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBARS\tCOMPLETE")
	for _, doc := range docs {
		complete := 0
		for _, ns := range doc.Group.Bars {
			if ns.State == progress.Completed {
				complete++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			doc.ID,
			doc.Name,
			doc.Timestamp.Format("2006-01-02 15:04:05"),
			len(doc.Group.Bars),
			complete,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var doc *storage.Document
	if useKV {
		kv, err := storage.OpenKV(filepath.Join(cfg.StoreDir, kvDir))
		if err != nil {
			return err
		}
		defer kv.Close()
		doc, err = kv.Get(args[0])
		if err != nil {
			return err
		}
	} else {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		if doc, err = st.Load(args[0]); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no snapshot %q in %s", args[0], st.Dir())
			}
			return err
		}
	}

	group, err := progress.RestoreGroup(doc.Group, styleLookup(cfg, func() time.Duration { return 0 }))
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n\n", doc.Name, doc.Timestamp.Format(time.RFC3339))
	for _, r := range group.RenderAll() {
		b, _ := group.Get(r.Name)
		fmt.Printf("%-10s %s  %s\n", r.Name, r.Line.ANSI(), b.State())
	}
	if len(doc.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(doc.Metrics))
		for name := range doc.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, formatMetric(doc.Metrics[name]))
		}
	}
	return nil
}
