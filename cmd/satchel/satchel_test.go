package satchelcmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	satchelcmder "github.com/papercomputeco/satchel/cmd/satchel"
)

var _ = Describe("NewSatchelCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := satchelcmder.NewSatchelCmd()
		Expect(cmd.Use).To(Equal("satchel"))
	})

	It("has the expected subcommands", func() {
		cmd := satchelcmder.NewSatchelCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("install", "status", "list", "uninstall", "config", "version"))
	})

	It("has a persistent debug flag", func() {
		cmd := satchelcmder.NewSatchelCmd()
		f := cmd.PersistentFlags().Lookup("debug")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal("false"))
	})

	It("has a persistent target flag", func() {
		cmd := satchelcmder.NewSatchelCmd()
		f := cmd.PersistentFlags().Lookup("target")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal(""))
	})
})
