package utils

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/sitemapcheck/internal/models"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const reportTitle = "Broken Links Report"

// Reporter 报告生成器
type Reporter struct {
	outputPath string
}

// NewReporter 创建报告生成器, outputPath 为CSV报告路径
func NewReporter(outputPath string) *Reporter {
	return &Reporter{outputPath: outputPath}
}

// CSVPath CSV报告路径
func (r *Reporter) CSVPath() string {
	return r.outputPath
}

// HTMLPath HTML报告路径 (扩展名 .csv 替换为 .html)
func (r *Reporter) HTMLPath() string {
	return ReplaceExt(r.outputPath, ".csv", ".html")
}

// JSONPath JSON报告路径 (扩展名 .csv 替换为 .json)
func (r *Reporter) JSONPath() string {
	return ReplaceExt(r.outputPath, ".csv", ".json")
}

// SaveCSV 保存CSV报告, 表头为 url,status
func (r *Reporter) SaveCSV(broken []models.BrokenLink) error {
	if err := r.writeFile(r.CSVPath(), func(w io.Writer) error {
		return WriteCSV(w, broken)
	}); err != nil {
		return err
	}
	Infof("CSV报告已保存: %s", r.CSVPath())
	return nil
}

// SaveHTML 保存HTML报告
func (r *Reporter) SaveHTML(broken []models.BrokenLink) error {
	if err := r.writeFile(r.HTMLPath(), func(w io.Writer) error {
		return WriteHTML(w, broken)
	}); err != nil {
		return err
	}
	Infof("HTML报告已保存: %s", r.HTMLPath())
	return nil
}

// SaveJSON 保存JSON摘要报告
func (r *Reporter) SaveJSON(report *models.CheckReport) error {
	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}
	if err := r.writeFile(r.JSONPath(), func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return err
	}
	Infof("JSON报告已保存: %s", r.JSONPath())
	return nil
}

func (r *Reporter) writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建报告目录失败: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建报告文件失败: %w", err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := write(bw); err != nil {
		return fmt.Errorf("写入报告文件失败 [%s]: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("写入报告文件失败 [%s]: %w", path, err)
	}

	Debugf("保存报告: %s", path)
	return file.Close()
}

// WriteCSV 写出CSV格式的失效链接, 传输失败的状态列为空
func WriteCSV(w io.Writer, broken []models.BrokenLink) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"url", "status"}); err != nil {
		return err
	}
	for _, link := range broken {
		if err := cw.Write([]string{link.URL, link.StatusText()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHTML 写出HTML格式的失效链接表格
func WriteHTML(w io.Writer, broken []models.BrokenLink) error {
	table := element(atom.Table, html.Attribute{Key: "border", Val: "1"})
	table.AppendChild(row(atom.Th, "URL", "Status"))
	for _, link := range broken {
		table.AppendChild(row(atom.Td, link.URL, link.StatusText()))
	}

	head := element(atom.Head)
	head.AppendChild(withText(element(atom.Title), reportTitle))

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), reportTitle))
	body.AppendChild(table)

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	return html.Render(w, doc)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

func row(cell atom.Atom, values ...string) *html.Node {
	tr := element(atom.Tr)
	for _, v := range values {
		tr.AppendChild(withText(element(cell), v))
	}
	return tr
}

// NewProgressBar 创建进度条
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stdout) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
