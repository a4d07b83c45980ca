// Copyright 2017-2018 DigitalOcean.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smbios

import "fmt"

// An InfoType is the type code of an SMBIOS structure. Codes defined by the
// DMTF have named constants; any other code (OEM or vendor specific, 128
// and above, or unassigned) is carried as-is and reports Known() == false.
type InfoType uint8

// Structure types defined by DSP0134.
const (
	TypeBIOS                         InfoType = 0
	TypeSystem                       InfoType = 1
	TypeBaseBoard                    InfoType = 2
	TypeEnclosure                    InfoType = 3
	TypeProcessor                    InfoType = 4
	TypeMemoryController             InfoType = 5
	TypeMemoryModule                 InfoType = 6
	TypeCache                        InfoType = 7
	TypePortConnector                InfoType = 8
	TypeSystemSlots                  InfoType = 9
	TypeOnBoardDevices               InfoType = 10
	TypeOEMStrings                   InfoType = 11
	TypeSystemConfigurationOptions   InfoType = 12
	TypeBIOSLanguage                 InfoType = 13
	TypeGroupAssociations            InfoType = 14
	TypeSystemEventLog               InfoType = 15
	TypePhysicalMemoryArray          InfoType = 16
	TypeMemoryDevice                 InfoType = 17
	TypeMemoryError32                InfoType = 18
	TypeMemoryArrayMappedAddress     InfoType = 19
	TypeMemoryDeviceMappedAddress    InfoType = 20
	TypeBuiltInPointingDevice        InfoType = 21
	TypePortableBattery              InfoType = 22
	TypeSystemReset                  InfoType = 23
	TypeHardwareSecurity             InfoType = 24
	TypeSystemPowerControls          InfoType = 25
	TypeVoltageProbe                 InfoType = 26
	TypeCoolingDevice                InfoType = 27
	TypeTemperatureProbe             InfoType = 28
	TypeElectricalCurrentProbe       InfoType = 29
	TypeOutOfBandRemoteAccess        InfoType = 30
	TypeBootIntegrityServices        InfoType = 31
	TypeSystemBoot                   InfoType = 32
	TypeMemoryError64                InfoType = 33
	TypeManagementDevice             InfoType = 34
	TypeManagementDeviceComponent    InfoType = 35
	TypeManagementDeviceThreshold    InfoType = 36
	TypeMemoryChannel                InfoType = 37
	TypeIPMIDevice                   InfoType = 38
	TypeSystemPowerSupply            InfoType = 39
	TypeAdditionalInformation        InfoType = 40
	TypeOnboardDevicesExtended       InfoType = 41
	TypeManagementControllerHostIntf InfoType = 42
	TypeTPMDevice                    InfoType = 43
	TypeProcessorAdditional          InfoType = 44
	TypeFirmwareInventory            InfoType = 45
	TypeStringProperty               InfoType = 46
	TypeInactive                     InfoType = 126
	TypeEndOfTable                   InfoType = 127
)

var infoTypeNames = map[InfoType]string{
	TypeBIOS:                         "BIOS",
	TypeSystem:                       "System",
	TypeBaseBoard:                    "BaseBoard",
	TypeEnclosure:                    "Enclosure",
	TypeProcessor:                    "Processor",
	TypeMemoryController:             "MemoryController",
	TypeMemoryModule:                 "MemoryModule",
	TypeCache:                        "Cache",
	TypePortConnector:                "PortConnector",
	TypeSystemSlots:                  "SystemSlots",
	TypeOnBoardDevices:               "OnBoardDevices",
	TypeOEMStrings:                   "OEMStrings",
	TypeSystemConfigurationOptions:   "SystemConfigurationOptions",
	TypeBIOSLanguage:                 "BIOSLanguage",
	TypeGroupAssociations:            "GroupAssociations",
	TypeSystemEventLog:               "SystemEventLog",
	TypePhysicalMemoryArray:          "PhysicalMemoryArray",
	TypeMemoryDevice:                 "MemoryDevice",
	TypeMemoryError32:                "MemoryError32",
	TypeMemoryArrayMappedAddress:     "MemoryArrayMappedAddress",
	TypeMemoryDeviceMappedAddress:    "MemoryDeviceMappedAddress",
	TypeBuiltInPointingDevice:        "BuiltInPointingDevice",
	TypePortableBattery:              "PortableBattery",
	TypeSystemReset:                  "SystemReset",
	TypeHardwareSecurity:             "HardwareSecurity",
	TypeSystemPowerControls:          "SystemPowerControls",
	TypeVoltageProbe:                 "VoltageProbe",
	TypeCoolingDevice:                "CoolingDevice",
	TypeTemperatureProbe:             "TemperatureProbe",
	TypeElectricalCurrentProbe:       "ElectricalCurrentProbe",
	TypeOutOfBandRemoteAccess:        "OutOfBandRemoteAccess",
	TypeBootIntegrityServices:        "BootIntegrityServices",
	TypeSystemBoot:                   "SystemBoot",
	TypeMemoryError64:                "MemoryError64",
	TypeManagementDevice:             "ManagementDevice",
	TypeManagementDeviceComponent:    "ManagementDeviceComponent",
	TypeManagementDeviceThreshold:    "ManagementDeviceThreshold",
	TypeMemoryChannel:                "MemoryChannel",
	TypeIPMIDevice:                   "IPMIDevice",
	TypeSystemPowerSupply:            "SystemPowerSupply",
	TypeAdditionalInformation:        "AdditionalInformation",
	TypeOnboardDevicesExtended:       "OnboardDevicesExtended",
	TypeManagementControllerHostIntf: "ManagementControllerHostInterface",
	TypeTPMDevice:                    "TPMDevice",
	TypeProcessorAdditional:          "ProcessorAdditional",
	TypeFirmwareInventory:            "FirmwareInventory",
	TypeStringProperty:               "StringProperty",
	TypeInactive:                     "Inactive",
	TypeEndOfTable:                   "EndOfTable",
}

// Known reports whether t is a structure type defined by the DMTF.
func (t InfoType) Known() bool {
	_, ok := infoTypeNames[t]
	return ok
}

func (t InfoType) String() string {
	if s, ok := infoTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("OEM(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t InfoType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
