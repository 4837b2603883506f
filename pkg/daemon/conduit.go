/*
   AtrDrive - Atari 8-bit disk drive emulator
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of AtrDrive.

   AtrDrive is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   AtrDrive is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with AtrDrive. If not, see <http://www.gnu.org/licenses/>.
*/

package daemon

import (
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"
)

//
const commandLength = 5

// SIO bus replies
const (
	ReplyAck      = 'A'
	ReplyNak      = 'N'
	ReplyComplete = 'C'
	ReplyError    = 'E'
)

// Port is the serial link to the Atari
//
// Generated mock using mockgen:
//  mockgen -source=conduit.go -destination=mock_port_test.go -package daemon
type Port interface {
	io.ReadWriteCloser
}

//
type conduit struct {
	port Port
}

//
func newConduit(device string, baud int) (*conduit, error) {
	port, err := openPort(device, baud)
	if err != nil {
		return nil, err
	}
	return &conduit{port: port}, nil
}

//
func openPort(p string, baud int) (Port, error) {
	return serial.Open(serial.OpenOptions{
		PortName:        p,
		BaudRate:        uint(baud),
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
}

//
func (c *conduit) close() error {
	return c.port.Close()
}

//
func (c *conduit) receive(data []byte) error {
	_, err := io.ReadFull(c.port, data)
	return err
}

//
func (c *conduit) send(data []byte) error {
	_, err := c.port.Write(data)
	return err
}

//
func (c *conduit) reply(r byte) error {
	return c.send([]byte{r})
}

// sendFrame sends a complete reply followed by data and its checksum
func (c *conduit) sendFrame(data []byte) error {
	buf := make([]byte, 0, len(data)+2)
	buf = append(buf, ReplyComplete)
	buf = append(buf, data...)
	buf = append(buf, checksum(data))
	return c.send(buf)
}

// receiveFrame receives length data bytes followed by a checksum
func (c *conduit) receiveFrame(length int) ([]byte, error) {

	buf := make([]byte, length+1)
	if err := c.receive(buf); err != nil {
		return nil, err
	}

	data := buf[:length]
	if want, got := checksum(data), buf[length]; want != got {
		return nil, fmt.Errorf(
			"data frame checksum mismatch, want %02x, got %02x", want, got)
	}

	return data, nil
}

/*
	receiveCommand receives the next command frame. When a frame's checksum
	does not match, we're not aligned with the frame start. In that case, one
	more byte is shifted in until a valid frame is found.
*/
func (c *conduit) receiveCommand() (*command, error) {

	data := make([]byte, commandLength)
	if err := c.receive(data); err != nil {
		return nil, err
	}

	for !isValidFrame(data) {
		log.Tracef("discarding byte %02x", data[0])
		shiftLeft(data)
		if err := c.receive(data[len(data)-1:]); err != nil {
			return nil, err
		}
	}

	return newCommand(data, c), nil
}

//
func isValidFrame(data []byte) bool {
	l := len(data) - 1
	return checksum(data[:l]) == data[l]
}

// checksum computes the SIO checksum, i.e. the sum of all bytes with carry
// added back in after each step
func checksum(data []byte) byte {
	sum := 0
	for _, b := range data {
		sum += int(b)
		if sum > 0xff {
			sum = (sum & 0xff) + 1
		}
	}
	return byte(sum)
}

//
func shiftLeft(buf []byte) {
	if len(buf) > 1 {
		for ix := 0; ix < len(buf)-1; ix++ {
			buf[ix] = buf[ix+1]
		}
	}
}
