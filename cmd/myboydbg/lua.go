package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// bindDebugger installs the cpu, mem and bp globals a script uses to
// drive d. There is no in-pack example of gopher-lua's binding API to
// ground the call shapes on (the teacher's go.mod carries the
// dependency but none of the retrieved source files use it); the
// surface exposed here is otherwise a direct translation of
// debug_cpu_z80.go's DebugZ80 method set into Lua closures.
func bindDebugger(L *lua.LState, d *Debugger) {
	cpuTable := L.NewTable()
	L.SetField(cpuTable, "get", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		v, ok := d.GetRegister(name)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(v))
		return 1
	}))
	L.SetField(cpuTable, "set", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		value := L.CheckNumber(2)
		L.Push(lua.LBool(d.SetRegister(name, uint64(value))))
		return 1
	}))
	L.SetField(cpuTable, "step", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(d.Step()))
		return 1
	}))
	L.SetField(cpuTable, "run", L.NewFunction(func(L *lua.LState) int {
		maxSteps := L.OptInt(1, 1<<20)
		pc, hit, steps := d.Run(maxSteps)
		L.Push(lua.LNumber(pc))
		L.Push(lua.LBool(hit))
		L.Push(lua.LNumber(steps))
		return 3
	}))
	L.SetField(cpuTable, "fault", L.NewFunction(func(L *lua.LState) int {
		if d.cpu.Fault == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(d.cpu.Fault.Error()))
		return 1
	}))
	L.SetGlobal("cpu", cpuTable)

	memTable := L.NewTable()
	L.SetField(memTable, "read", L.NewFunction(func(L *lua.LState) int {
		addr := uint16(L.CheckNumber(1))
		size := L.OptInt(2, 1)
		data := d.ReadMemory(addr, size)
		if size == 1 {
			L.Push(lua.LNumber(data[0]))
			return 1
		}
		out := L.NewTable()
		for i, b := range data {
			out.Append(lua.LNumber(b))
			_ = i
		}
		L.Push(out)
		return 1
	}))
	L.SetField(memTable, "write", L.NewFunction(func(L *lua.LState) int {
		addr := uint16(L.CheckNumber(1))
		value := byte(L.CheckNumber(2))
		d.WriteMemory(addr, []byte{value})
		return 0
	}))
	L.SetGlobal("mem", memTable)

	bpTable := L.NewTable()
	L.SetField(bpTable, "set", L.NewFunction(func(L *lua.LState) int {
		d.SetBreakpoint(uint16(L.CheckNumber(1)))
		return 0
	}))
	L.SetField(bpTable, "clear", L.NewFunction(func(L *lua.LState) int {
		d.ClearBreakpoint(uint16(L.CheckNumber(1)))
		return 0
	}))
	L.SetField(bpTable, "has", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(d.HasBreakpoint(uint16(L.CheckNumber(1)))))
		return 1
	}))
	L.SetField(bpTable, "list", L.NewFunction(func(L *lua.LState) int {
		out := L.NewTable()
		for _, addr := range d.ListBreakpoints() {
			out.Append(lua.LNumber(addr))
		}
		L.Push(out)
		return 1
	}))
	L.SetGlobal("bp", bpTable)

	L.SetGlobal("print_registers", L.NewFunction(func(L *lua.LState) int {
		for _, name := range []string{"AF", "BC", "DE", "HL", "SP", "PC"} {
			v, _ := d.GetRegister(name)
			fmt.Printf("%s=%04X ", name, v)
		}
		fmt.Println()
		return 0
	}))
}
