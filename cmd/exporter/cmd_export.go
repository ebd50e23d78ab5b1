package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	recordsvc "agri_holding/internal/api/records/service"
	"agri_holding/internal/common"
	"agri_holding/internal/export"
	"agri_holding/internal/notify"
	rv "agri_holding/internal/recordview"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// exportFlags bộ lọc và định dạng dùng chung cho export và export-all
type exportFlags struct {
	format    string
	outDir    string
	search    string
	status    string
	timeRange string
	sortKey   string
	sortDir   string
	recordID  string
	parallel  int
}

var flags exportFlags

var exportCmd = &cobra.Command{
	Use:   "export <entity>",
	Short: "Xuất một loại bản ghi (hoặc một bản ghi với --id) ra file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := exportEntity(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var exportAllCmd = &cobra.Command{
	Use:   "export-all",
	Short: "Xuất mọi loại bản ghi, bỏ qua loại không có dữ liệu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportAll(cmd.Context(), cmd.OutOrStdout(), flags)
	},
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, exportAllCmd} {
		f := c.Flags()
		f.StringVarP(&flags.format, "format", "f", "csv", "Định dạng: csv | xlsx | pdf")
		f.StringVarP(&flags.outDir, "out", "o", ".", "Thư mục ghi file")
		f.StringVar(&flags.search, "search", "", "Từ khóa tìm kiếm")
		f.StringVar(&flags.status, "status", rv.StatusAll, "Tab trạng thái")
		f.StringVar(&flags.timeRange, "time-range", string(rv.RangeAll), "Khoảng thời gian: all | hour | day | week | month | year")
		f.StringVar(&flags.sortKey, "sort", "", "Cột sắp xếp (mặc định theo loại bản ghi)")
		f.StringVar(&flags.sortDir, "dir", "asc", "Chiều sắp xếp: asc | desc")
	}
	exportCmd.Flags().StringVar(&flags.recordID, "id", "", "Chỉ xuất bản ghi có id này")
	exportAllCmd.Flags().IntVar(&flags.parallel, "parallel", 4, "Số loại bản ghi xuất đồng thời")
}

// input chuyển cờ dòng lệnh thành ExportInput cho entity
func (f exportFlags) input(entity rv.EntityConfig) (recordsvc.ExportInput, error) {
	format, err := export.ParseFormat(f.format)
	if err != nil {
		return recordsvc.ExportInput{}, err
	}
	rng, err := rv.ParseTimeRange(f.timeRange)
	if err != nil {
		return recordsvc.ExportInput{}, err
	}
	sort := entity.DefaultSort
	if f.sortKey != "" {
		dir, err := rv.ParseSortDirection(f.sortDir)
		if err != nil {
			return recordsvc.ExportInput{}, err
		}
		sort = rv.SortState{Key: f.sortKey, Direction: dir}
	}
	status := f.status
	if status == "" {
		status = rv.StatusAll
	}
	return recordsvc.ExportInput{
		Format:   format,
		Filter:   rv.FilterState{SearchTerm: f.search, Status: status, TimeRange: rng},
		Sort:     sort,
		RecordID: f.recordID,
	}, nil
}

// exportEntity xuất một loại bản ghi và ghi file nguyên tử vào outDir, trả về đường dẫn file
func exportEntity(ctx context.Context, out io.Writer, name string, f exportFlags) (string, error) {
	entity, err := state.svc.Entity(name)
	if err != nil {
		return "", err
	}
	in, err := f.input(entity)
	if err != nil {
		return "", err
	}

	rec := notify.NewRecorder(nil)
	res, err := state.svc.Export(ctx, state.tenant, name, in, rec)
	printNotices(out, rec.Notices())
	if err != nil {
		return "", err
	}
	if res.State.IsSample() {
		fmt.Fprintf(out, "[%s] Cảnh báo: dữ liệu mẫu (%s)\n", name, res.State.Banner())
	}

	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(f.outDir, res.Download.Filename)
	if err := atomic.WriteFile(path, bytes.NewReader(res.Download.Body)); err != nil {
		return "", fmt.Errorf("ghi file %s: %w", path, err)
	}
	return path, nil
}

// exportAll xuất đồng thời mọi loại bản ghi; loại không có dữ liệu chỉ được cảnh báo
func exportAll(ctx context.Context, out io.Writer, f exportFlags) error {
	var mu sync.Mutex
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return out.Write(p)
	})

	g, ctx := errgroup.WithContext(ctx)
	if f.parallel > 0 {
		g.SetLimit(f.parallel)
	}
	for _, e := range state.svc.Entities() {
		name := e.Name
		g.Go(func() error {
			path, err := exportEntity(ctx, w, name, f)
			if errors.Is(err, common.ErrNothingToExport) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Fprintln(w, path)
			return nil
		})
	}
	return g.Wait()
}

func printNotices(out io.Writer, notices []notify.Notice) {
	for _, n := range notices {
		fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Message)
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
