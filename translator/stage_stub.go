package translator

// Hull, domain, geometry, pixel, and compute stage setup/finalize are
// out of scope for v1 — only the vertex stage is fully specified. Each
// stub exists so Translator's switch over ShaderType stays exhaustive
// and so a later pass can fill in one stage at a time without
// reshaping the dispatch.

func (t *Translator) emitHsInit() {}
func (t *Translator) emitDsInit() {}
func (t *Translator) emitGsInit() {}
func (t *Translator) emitPsInit() {}
func (t *Translator) emitCsInit() {}

func (t *Translator) emitHsFinalize() {}
func (t *Translator) emitDsFinalize() {}
func (t *Translator) emitGsFinalize() {}
func (t *Translator) emitPsFinalize() {}
func (t *Translator) emitCsFinalize() {}
