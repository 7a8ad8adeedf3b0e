package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/cobby8/allowance-manager-web/internal/models"
	"github.com/cobby8/allowance-manager-web/internal/sheet"
)

// The goldmark converter is stateless between calls and safe to share.
var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func converter() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.Table))
	})
	return markdown
}

const htmlHead = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: "NanumGothic", sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #999; padding: 4px 8px; }
th { background: #424242; color: #fff; }
img { max-width: 45%%; max-height: 40vh; }
section { page-break-after: always; }
</style>
</head>
<body>
`

const htmlTail = "</body>\n</html>\n"

// HTML writes one printable document with a payslip and an evidence page per
// settlement record. Raw HTML in sheet content is not passed through.
func HTML(w io.Writer, settlements []models.SettlementRecord, opts Options) error {
	title := "노무비 지급 명세서"
	if len(settlements) == 1 {
		title = settlements[0].Name + " " + title
	}
	if _, err := fmt.Fprintf(w, htmlHead, html.EscapeString(title)); err != nil {
		return err
	}

	for _, s := range settlements {
		var md bytes.Buffer
		writePayslip(&md, s, opts)
		writeEvidence(&md, s, opts)

		if _, err := io.WriteString(w, "<section>\n"); err != nil {
			return err
		}
		if err := converter().Convert(md.Bytes(), w); err != nil {
			return fmt.Errorf("rendering payslip for %s: %w", s.Name, err)
		}
		if _, err := io.WriteString(w, "</section>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, htmlTail)
	return err
}

// Payslip returns the Markdown payslip for one settlement record.
func Payslip(s models.SettlementRecord, opts Options) string {
	var md bytes.Buffer
	writePayslip(&md, s, opts)
	return md.String()
}

func writePayslip(md *bytes.Buffer, s models.SettlementRecord, opts Options) {
	p := opts.person(s.PersonRecord)

	md.WriteString("# 노무비 지급 명세서\n\n")
	fmt.Fprintf(md, "발급일자: %s\n\n", opts.issuedAt().Format("2006. 1. 2."))

	md.WriteString("| 사원 정보 | | | |\n|---|---|---|---|\n")
	fmt.Fprintf(md, "| 성명 | %s | 주민등록번호 | %s |\n", cell(p.Name), cell(p.ResidentID))
	fmt.Fprintf(md, "| 연락처 | %s | 소속 | %s |\n", cell(contact(p)), cell(p.WorkPlace))
	fmt.Fprintf(md, "| 은행명 | %s | 계좌번호 | %s |\n\n", cell(p.BankName), cell(p.AccountNumber))

	if len(s.Activities) == 0 {
		if p.WorkDate != "" || p.DailyRate != "" {
			fmt.Fprintf(md, "근무일: %s, 일당: %s\n\n", cell(orDash(p.WorkDate)), cell(orDash(p.DailyRate)))
		}
		return
	}

	md.WriteString("| 날짜 | 구분 | 지급액 | 공제액(세금) | 실수령액 |\n|:-:|:-:|--:|--:|--:|\n")
	for _, a := range s.Activities {
		fmt.Fprintf(md, "| %s | %s | %s | %s | %s |\n",
			cell(sheet.FormatDate(a.Date)),
			cell(orDash(a.Category)),
			Amount(a.GrossAmount),
			Amount(a.TaxTotal()),
			Amount(a.NetAmount),
		)
	}
	fmt.Fprintf(md, "| **합계** | | **%s** | **%s** | **%s** |\n\n",
		Amount(s.TotalGross),
		Amount(s.TotalDeduction()),
		Amount(s.TotalNet),
	)
}

var evidenceSlots = []struct {
	title string
	ref   func(models.PersonRecord) string
}{
	{"신분증", func(p models.PersonRecord) string { return p.IDCardImage }},
	{"통장사본", func(p models.PersonRecord) string { return p.BankBookImage }},
	{"자격증", func(p models.PersonRecord) string { return p.LicenseImage }},
}

func writeEvidence(md *bytes.Buffer, s models.SettlementRecord, opts Options) {
	p := opts.person(s.PersonRecord)

	md.WriteString("## 증빙자료\n\n")
	fmt.Fprintf(md, "- 성명: %s\n", cell(p.Name))
	fmt.Fprintf(md, "- 주민등록번호: %s\n", cell(p.ResidentID))
	fmt.Fprintf(md, "- 연락처: %s\n", cell(contact(p)))
	fmt.Fprintf(md, "- 은행명: %s\n", cell(p.BankName))
	fmt.Fprintf(md, "- 계좌번호: %s\n\n", cell(p.AccountNumber))

	for _, slot := range evidenceSlots {
		fmt.Fprintf(md, "### %s\n\n", slot.title)
		ref := slot.ref(p)
		if ref == "" {
			md.WriteString("이미지 없음 (데이터 없음)\n\n")
			continue
		}
		fmt.Fprintf(md, "![%s](<%s>)\n\n", slot.title, linkTarget(DirectLink(ref)))
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"`", "\\`",
	"#", `\#`,
	"\r", " ",
	"\n", " ",
)

// cell escapes sheet text for use inside a Markdown table cell or list item.
func cell(s string) string {
	return markdownEscaper.Replace(strings.TrimSpace(s))
}

// linkTarget strips characters that would end an angle-bracket link target.
func linkTarget(url string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, url)
}
