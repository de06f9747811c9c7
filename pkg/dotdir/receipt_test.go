package dotdir_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/satchel/pkg/dotdir"
)

var _ = Describe("Receipt", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		m = dotdir.NewManager()
	})

	It("returns nil when no receipt exists", func() {
		receipt, err := m.LoadReceipt(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(receipt).To(BeNil())
	})

	It("round-trips a saved receipt", func() {
		in := &dotdir.Receipt{
			InstalledAt: time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC),
			Source:      "/home/user/toolkit",
			Files:       []string{"skills/commit.md", "commands/review.md"},
			Counts:      map[string]int{"skills": 1, "commands": 1},
		}

		Expect(m.SaveReceipt(in, tmpDir)).To(Succeed())

		out, err := m.LoadReceipt(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(BeNil())
		Expect(out.Source).To(Equal(in.Source))
		Expect(out.Files).To(Equal(in.Files))
		Expect(out.Counts).To(Equal(in.Counts))
		Expect(out.InstalledAt.Equal(in.InstalledAt)).To(BeTrue())
	})

	It("rejects saving a nil receipt", func() {
		Expect(m.SaveReceipt(nil, tmpDir)).NotTo(Succeed())
	})

	It("fails on a corrupt receipt file", func() {
		path := filepath.Join(tmpDir, "satchel-receipt.json")
		Expect(os.WriteFile(path, []byte("{not json"), 0o644)).To(Succeed())

		_, err := m.LoadReceipt(tmpDir)
		Expect(err).To(HaveOccurred())
	})

	It("clears a receipt and tolerates clearing twice", func() {
		in := &dotdir.Receipt{InstalledAt: time.Now(), Counts: map[string]int{}}
		Expect(m.SaveReceipt(in, tmpDir)).To(Succeed())

		Expect(m.ClearReceipt(tmpDir)).To(Succeed())
		Expect(m.ClearReceipt(tmpDir)).To(Succeed())

		receipt, err := m.LoadReceipt(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(receipt).To(BeNil())
	})
})
