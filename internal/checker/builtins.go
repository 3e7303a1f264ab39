package checker

// Static snapshot of the names exposed by CPython's builtins module
// (CPython 3.12). Kept as an explicit list instead of deriving it from a
// running interpreter so the checker reports the same findings no matter
// where it runs.
var pythonBuiltins = []string{
	// Exceptions and warnings
	"ArithmeticError",
	"AssertionError",
	"AttributeError",
	"BaseException",
	"BaseExceptionGroup",
	"BlockingIOError",
	"BrokenPipeError",
	"BufferError",
	"BytesWarning",
	"ChildProcessError",
	"ConnectionAbortedError",
	"ConnectionError",
	"ConnectionRefusedError",
	"ConnectionResetError",
	"DeprecationWarning",
	"EOFError",
	"EncodingWarning",
	"EnvironmentError",
	"Exception",
	"ExceptionGroup",
	"FileExistsError",
	"FileNotFoundError",
	"FloatingPointError",
	"FutureWarning",
	"GeneratorExit",
	"IOError",
	"ImportError",
	"ImportWarning",
	"IndentationError",
	"IndexError",
	"InterruptedError",
	"IsADirectoryError",
	"KeyError",
	"KeyboardInterrupt",
	"LookupError",
	"MemoryError",
	"ModuleNotFoundError",
	"NameError",
	"NotADirectoryError",
	"NotImplementedError",
	"OSError",
	"OverflowError",
	"PendingDeprecationWarning",
	"PermissionError",
	"ProcessLookupError",
	"RecursionError",
	"ReferenceError",
	"ResourceWarning",
	"RuntimeError",
	"RuntimeWarning",
	"StopAsyncIteration",
	"StopIteration",
	"SyntaxError",
	"SyntaxWarning",
	"SystemError",
	"SystemExit",
	"TabError",
	"TimeoutError",
	"TypeError",
	"UnboundLocalError",
	"UnicodeDecodeError",
	"UnicodeEncodeError",
	"UnicodeError",
	"UnicodeTranslateError",
	"UnicodeWarning",
	"UserWarning",
	"ValueError",
	"Warning",
	"ZeroDivisionError",

	// Constants
	"Ellipsis",
	"False",
	"None",
	"NotImplemented",
	"True",
	"__debug__",

	// Dunders of the builtins module itself
	"__build_class__",
	"__builtins__",
	"__import__",
	"__loader__",
	"__package__",
	"__spec__",

	// Functions and types
	"abs",
	"aiter",
	"all",
	"anext",
	"any",
	"ascii",
	"bin",
	"bool",
	"breakpoint",
	"bytearray",
	"bytes",
	"callable",
	"chr",
	"classmethod",
	"compile",
	"complex",
	"copyright",
	"delattr",
	"dict",
	"dir",
	"divmod",
	"enumerate",
	"eval",
	"exec",
	"exit",
	"filter",
	"float",
	"format",
	"frozenset",
	"getattr",
	"globals",
	"hasattr",
	"hash",
	"help",
	"hex",
	"id",
	"input",
	"int",
	"isinstance",
	"issubclass",
	"iter",
	"len",
	"license",
	"list",
	"locals",
	"map",
	"max",
	"memoryview",
	"min",
	"next",
	"object",
	"oct",
	"open",
	"ord",
	"pow",
	"print",
	"property",
	"quit",
	"range",
	"repr",
	"reversed",
	"round",
	"set",
	"setattr",
	"slice",
	"sorted",
	"staticmethod",
	"str",
	"sum",
	"super",
	"tuple",
	"type",
	"vars",
	"zip",
}

// whitelist holds builtins-namespace names that are conventionally rebound
// and therefore never reported: the module identity, the docstring slot, the
// interpreter's "credits" convenience and the throwaway underscore.
var whitelist = map[string]struct{}{
	"__name__": {},
	"__doc__":  {},
	"credits":  {},
	"_":        {},
}

var reserved = buildReserved()

func buildReserved() map[string]struct{} {
	names := make(map[string]struct{}, len(pythonBuiltins))
	for _, name := range pythonBuiltins {
		if _, ok := whitelist[name]; ok {
			continue
		}
		names[name] = struct{}{}
	}
	return names
}

// IsReserved reports whether name belongs to the builtins namespace and is
// not whitelisted.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}
