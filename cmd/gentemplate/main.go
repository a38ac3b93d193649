// Command gentemplate regenerates the embedded Word report template
// (internal/exporter/word/template.docx). Run it after changing the
// placeholder layout and copy the result over the committed file.
package main

import (
	"archive/zip"
	"os"
)

func main() {
	f, err := os.Create("template.docx")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()

	write(w, "[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	write(w, "_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	write(w, "word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`)

	write(w, "word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="48"/></w:rPr><w:t>API Specification</w:t></w:r></w:p>
<w:p><w:r><w:t>Generated: {{Date}}</w:t></w:r></w:p>
<w:p><w:r><w:t>Total Endpoints: {{TotalEndpoints}}</w:t></w:r></w:p>
<w:p><w:r><w:t>Total Controllers: {{TotalControllers}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{Content}}</w:t></w:r></w:p>
<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>
</w:body>
</w:document>`)
}

func write(w *zip.Writer, name, content string) {
	part, err := w.Create(name)
	if err != nil {
		panic(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		panic(err)
	}
}
