package documents

import "bersekolah/gateway/internal/models"

const (
	CategoryWajib     = "wajib"
	CategoryPendukung = "pendukung"
	CategorySosmed    = "sosmed"
)

// endpointForType maps each logical document type to its dedicated upload
// endpoint on the core API. One endpoint per type, not a parameterized one.
var endpointForType = map[models.DocumentType]string{
	models.DocKTP:             "/upload-ktp",
	models.DocKartuKeluarga:   "/upload-kartu-keluarga",
	models.DocFoto:            "/upload-foto",
	models.DocRapor:           "/upload-rapor",
	models.DocIjazah:          "/upload-ijazah",
	models.DocSertifikat:      "/upload-sertifikat",
	models.DocSKTM:            "/upload-sktm",
	models.DocSuratPernyataan: "/upload-surat-pernyataan",
	models.DocBuktiPembayaran: "/upload-bukti-pembayaran",
	models.DocEssay:           "/upload-essay",
	models.DocCV:              "/upload-cv",
	models.DocInstagramFollow: "/upload-instagram-follow",
	models.DocTwibbonPost:     "/upload-twibbon",
}

var categoryForType = map[models.DocumentType]string{
	models.DocKTP:             CategoryWajib,
	models.DocKartuKeluarga:   CategoryWajib,
	models.DocFoto:            CategoryWajib,
	models.DocSKTM:            CategoryWajib,
	models.DocSuratPernyataan: CategoryWajib,
	models.DocRapor:           CategoryPendukung,
	models.DocIjazah:          CategoryPendukung,
	models.DocSertifikat:      CategoryPendukung,
	models.DocBuktiPembayaran: CategoryPendukung,
	models.DocEssay:           CategoryPendukung,
	models.DocCV:              CategoryPendukung,
	models.DocInstagramFollow: CategorySosmed,
	models.DocTwibbonPost:     CategorySosmed,
}

// sosmedTypes is the social-proof subset the client narrows to; the core API
// is trusted to return a superset for the sosmed category.
var sosmedTypes = map[models.DocumentType]struct{}{
	models.DocInstagramFollow: {},
	models.DocTwibbonPost:     {},
}
