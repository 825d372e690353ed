// Package notices holds the operator-facing messages of the console and
// registers their Thai translations with go-l10n.
package notices

import "github.com/ideamans/go-l10n"

// Message keys. The English text doubles as the lexicon key.
const (
	InvalidSheetLink   = "Paste a valid Google Sheet link or id"
	MissingTemplate    = "Upload a template (image or PDF) first"
	MissingSheetOrTmpl = "Enter a sheet link and upload a template first"
	TabsSynced         = "Synced sheet tabs: found %d tabs"
	TabsSyncFailed     = "Could not sync sheet tabs; check sharing permissions and the backend /api/sheets/tabs"
	PreviewLoaded      = "Loaded %d rows from %s"
	PreviewFailed      = "Could not load sample data from the sheet"
	ZipSaved           = "Saved archive to %s"
	ZipFailed          = "Could not generate the ZIP archive"
	FileSaved          = "Saved %s"
	FileFailed         = "Could not download the current file"
	RenderFailed       = "Preview render failed"
	RenderLoading      = "Rendering preview on the server..."
	RenderEmpty        = "No preview yet; press r to refresh or adjust settings to render automatically"
	TemplateLoaded     = "Template loaded (%s mode)"
	TemplateFailed     = "Could not load template: %s"
	FontLoaded         = "Custom font %s registered"
	FontMissing        = "Upload a font file to use in previews and send to the backend"
	PlacementReset     = "Marker reset to centre"
	RangeCopied        = "Range copied to clipboard"
	ClipboardFailed    = "Could not copy to clipboard"
	QuickPreviewSaved  = "Quick preview written to %s"
	QuickPreviewPDF    = "Quick preview is only available for image templates"
	ConfigMissingAPI   = "backend API URL is not configured"
	PlacementHelp      = "Drag or use arrow keys to move (Shift=10px, Alt=0.5px)"
)

func init() {
	l10n.Register("th", l10n.LexiconMap{
		InvalidSheetLink:   "โปรดวางลิงก์หรือ ID ของ Google Sheet ให้ถูกต้อง",
		MissingTemplate:    "กรุณาอัปโหลดเทมเพลต (ภาพหรือ PDF)",
		MissingSheetOrTmpl: "กรุณาใส่ลิงก์ชีตและอัปโหลดเทมเพลตก่อน",
		TabsSynced:         "ซิงค์รายชื่อชีตสำเร็จ พบ %d แท็บ",
		TabsSyncFailed:     "ซิงค์รายชื่อชีตไม่สำเร็จ โปรดตรวจสอบสิทธิ์และ backend /api/sheets/tabs",
		PreviewLoaded:      "ดึงข้อมูล %d แถวจาก %s",
		PreviewFailed:      "ดึงข้อมูลตัวอย่างจากชีตไม่สำเร็จ",
		ZipSaved:           "บันทึกไฟล์ ZIP ที่ %s",
		ZipFailed:          "สร้าง ZIP ไม่สำเร็จ",
		FileSaved:          "บันทึก %s แล้ว",
		FileFailed:         "ดาวน์โหลดไฟล์ปัจจุบันไม่สำเร็จ",
		RenderFailed:       "Preview เรนเดอร์ไม่สำเร็จ",
		RenderLoading:      "กำลังเรนเดอร์พรีวิวจากเซิร์ฟเวอร์…",
		RenderEmpty:        "ยังไม่มีพรีวิว — กด r เพื่อรีเฟรช หรือปรับค่าเพื่อให้เรนเดอร์อัตโนมัติ",
		TemplateLoaded:     "โหลดเทมเพลตแล้ว (โหมด %s)",
		TemplateFailed:     "โหลดเทมเพลตไม่สำเร็จ: %s",
		FontLoaded:         "ลงทะเบียนฟอนต์ %s แล้ว",
		FontMissing:        "อัปโหลดไฟล์ฟอนต์เพื่อใช้ในการพรีวิวและส่งให้ Backend",
		PlacementReset:     "รีเซ็ตตำแหน่งให้อยู่กลางแล้ว",
		RangeCopied:        "คัดลอกช่วงข้อมูลแล้ว",
		ClipboardFailed:    "คัดลอกไม่สำเร็จ",
		QuickPreviewSaved:  "บันทึกพรีวิวเร็วที่ %s",
		QuickPreviewPDF:    "พรีวิวเร็วรองรับเฉพาะเทมเพลตรูปภาพ",
		ConfigMissingAPI:   "ยังไม่ได้ตั้งค่า URL ของ backend API",
		PlacementHelp:      "ลากหรือใช้ปุ่มลูกศรเพื่อย้าย (Shift=10px, Alt=0.5px)",
	})
}

// T translates a message key.
func T(key string) string {
	return l10n.T(key)
}

// F translates and formats a message key.
func F(key string, args ...interface{}) string {
	return l10n.F(key, args...)
}
