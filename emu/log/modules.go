package log

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

// Predefine a few "common" module constants. The idea is to have a few
// "standard" modules that can be used for easy logging, but it's always
// possible to define additional modules through NewModule().
const (
	ModEmu Module = iota + 1
	ModVRAM
	ModTexCache
	ModDevice
	ModCLI

	endStandardMods
)

var modCount = endStandardMods

var modDebugMask ModuleMask = 0
var disabled bool

// Disable silences every module regardless of its debug mask.
func Disable() {
	disabled = true
}

// ModuleNames lists every registered module's name, standard and custom,
// in registration order.
func ModuleNames() []string {
	return modNames[1:]
}

var modNames = []string{
	"<error>", "emu", "vram", "texcache", "device", "cli",
}

func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return false
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

func (mod Module) String() string {
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return "<unknown>"
}

// Implement the whole logging interface directly on modules.

func (mod Module) WithFields(fields Fields) Entry {
	return Entry{mod: mod}.WithFields(fields)
}

func (mod Module) WithDelayedFields(getfields func() Fields) Entry {
	return Entry{mod: mod}.WithDelayedFields(getfields)
}

func (mod Module) WithField(key string, value any) Entry {
	return Entry{mod: mod}.WithField(key, value)
}

func (mod Module) Debug(args ...any) { Entry{mod: mod}.Debug(args...) }
func (mod Module) Print(args ...any) { Entry{mod: mod}.Print(args...) }
func (mod Module) Info(args ...any)  { Entry{mod: mod}.Info(args...) }
func (mod Module) Warn(args ...any)  { Entry{mod: mod}.Warn(args...) }
func (mod Module) Error(args ...any) { Entry{mod: mod}.Error(args...) }
func (mod Module) Fatal(args ...any) { Entry{mod: mod}.Fatal(args...) }

// printf-like family

func (mod Module) Debugf(format string, args ...any) {
	Entry{mod: mod}.Debugf(format, args...)
}

func (mod Module) Printf(format string, args ...any) {
	Entry{mod: mod}.Printf(format, args...)
}

func (mod Module) Infof(format string, args ...any) {
	Entry{mod: mod}.Infof(format, args...)
}

func (mod Module) Warnf(format string, args ...any) {
	Entry{mod: mod}.Warnf(format, args...)
}

func (mod Module) Warningf(format string, args ...any) {
	Entry{mod: mod}.Warningf(format, args...)
}

func (mod Module) Errorf(format string, args ...any) {
	Entry{mod: mod}.Errorf(format, args...)
}

func (mod Module) Fatalf(format string, args ...any) {
	Entry{mod: mod}.Fatalf(format, args...)
}

func (mod Module) Panicf(format string, args ...any) {
	Entry{mod: mod}.Panicf(format, args...)
}
